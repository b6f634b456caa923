package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/varuna-collections/pos-api/internal/ledger"
	"github.com/varuna-collections/pos-api/internal/report"
)

func saleAt(date time.Time, phone string, method ledger.PaymentMethod, items ...ledger.Item) ledger.Sale {
	var total int64
	for _, item := range items {
		total += int64(item.Rate)
	}
	return ledger.Sale{Date: date, Items: items, Total: total, Phone: phone, PaymentMethod: method}
}

func sampleLedger() []ledger.Sale {
	return []ledger.Sale{
		saleAt(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), "9999999999", ledger.PaymentCash,
			ledger.Item{Category: "jeans", Rate: 120}, ledger.Item{Category: "shirt", Rate: 100}),
		saleAt(time.Date(2024, 3, 15, 18, 5, 0, 0, time.UTC), "8888888888", ledger.PaymentQR,
			ledger.Item{Category: "t-shirt", Rate: 90}),
		saleAt(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), "7777777777", ledger.PaymentCash,
			ledger.Item{Category: "leggings", Rate: 110}),
		saleAt(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), "6666666666", ledger.PaymentQR,
			ledger.Item{Category: "jeans", Rate: 150}),
	}
}

func TestAvailableMonthsDescendingDistinct(t *testing.T) {
	months := report.AvailableMonths(sampleLedger())
	require.Equal(t, []string{"2024-04", "2024-03", "2023-12"}, months)
}

func TestAvailableMonthsEmptyLedger(t *testing.T) {
	require.Empty(t, report.AvailableMonths(nil))
}

func TestFilterByMonth(t *testing.T) {
	sales := sampleLedger()

	march := report.FilterByMonth(sales, "2024-03")
	require.Len(t, march, 2)
	for _, s := range march {
		require.Equal(t, time.March, s.Date.Month())
	}

	require.Len(t, report.FilterByMonth(sales, report.FilterAll), 4)
	require.Len(t, report.FilterByMonth(sales, ""), 4)
	require.Empty(t, report.FilterByMonth(sales, "2020-01"))
}

func TestFilterSelectorIsZeroPadded(t *testing.T) {
	// The selector uses "2024-03"; the unpadded aggregation key "2024-3"
	// must not match it.
	require.Empty(t, report.FilterByMonth(sampleLedger(), "2024-3"))
}

func TestDetailViewNewestFirst(t *testing.T) {
	sales := sampleLedger()
	view := report.DetailView(sales)
	require.Len(t, view, 4)
	for i := 1; i < len(view); i++ {
		require.False(t, view[i].Date.After(view[i-1].Date))
	}
	// input untouched
	require.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), sales[0].Date)
}

func TestAggregateBuckets(t *testing.T) {
	totals := report.Aggregate(sampleLedger())

	require.Equal(t, map[string]int64{
		"Fri Mar 15 2024": 310,
		"Mon Apr 01 2024": 110,
		"Sun Dec 31 2023": 150,
	}, totals.ByDay)
	require.Equal(t, map[string]int64{
		"2024-3":  310,
		"2024-4":  110,
		"2023-12": 150,
	}, totals.ByMonth)
	require.Equal(t, map[int]int64{2024: 420, 2023: 150}, totals.ByYear)
}

func TestAggregateSumsMatchAcrossBuckets(t *testing.T) {
	totals := report.Aggregate(sampleLedger())

	var grand int64
	for _, s := range sampleLedger() {
		grand += s.Total
	}
	sum := func(m map[string]int64) (out int64) {
		for _, v := range m {
			out += v
		}
		return
	}
	require.Equal(t, grand, sum(totals.ByDay))
	require.Equal(t, grand, sum(totals.ByMonth))
	var years int64
	for _, v := range totals.ByYear {
		years += v
	}
	require.Equal(t, grand, years)
}

func TestAggregateEmpty(t *testing.T) {
	totals := report.Aggregate(nil)
	require.Empty(t, totals.ByDay)
	require.Empty(t, totals.ByMonth)
	require.Empty(t, totals.ByYear)
}

func TestToCSV(t *testing.T) {
	sale := saleAt(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), "9999999999", ledger.PaymentCash,
		ledger.Item{Category: "jeans", Rate: 120}, ledger.Item{Category: "shirt", Rate: 100})
	csv := report.ToCSV([]ledger.Sale{sale})

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Date,Time,Phone Number,Payment Method,Items,Total (INR)", lines[0])
	require.Equal(t, `3/15/2024,10:30:00 AM,9999999999,Cash,"jeans @ 120 | shirt @ 100",220.00`, lines[1])
}

func TestToCSVQRLabelAndRowOrder(t *testing.T) {
	sales := sampleLedger()
	csv := report.ToCSV(sales)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[2], ",UPI/QR,")
	// rows follow input order, not date order
	require.True(t, strings.HasPrefix(lines[4], "12/31/2023,"))
}

func TestToCSVEmptyLedgerHeaderOnly(t *testing.T) {
	require.Equal(t, "Date,Time,Phone Number,Payment Method,Items,Total (INR)\n", report.ToCSV(nil))
}

func TestCSVFilename(t *testing.T) {
	require.Equal(t, "Sales_Report_All_Time.csv", report.CSVFilename(report.FilterAll))
	require.Equal(t, "Sales_Report_All_Time.csv", report.CSVFilename(""))
	require.Equal(t, "Sales_Report_2024-03.csv", report.CSVFilename("2024-03"))
}

type staticSource []ledger.Sale

func (s staticSource) All() []ledger.Sale { return s }

func TestMonthsHandler(t *testing.T) {
	h := &report.Handler{Source: staticSource(sampleLedger())}
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/months", nil)
	rr := httptest.NewRecorder()
	h.Months(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data struct {
			Months []string `json:"months"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, []string{"all", "2024-04", "2024-03", "2023-12"}, resp.Data.Months)
}

func TestGetHandlerFiltered(t *testing.T) {
	h := &report.Handler{Source: staticSource(sampleLedger())}
	req := httptest.NewRequest(http.MethodGet, "/v1/reports?month=2024-03", nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data struct {
			Filter string        `json:"filter"`
			Count  int           `json:"count"`
			Sales  []ledger.Sale `json:"sales"`
			Totals report.Totals `json:"totals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "2024-03", resp.Data.Filter)
	require.Equal(t, 2, resp.Data.Count)
	require.Len(t, resp.Data.Sales, 2)
	// newest first
	require.True(t, resp.Data.Sales[0].Date.After(resp.Data.Sales[1].Date))
	require.EqualValues(t, 310, resp.Data.Totals.ByMonth["2024-3"])
}

func TestGetHandlerDefaultsToAll(t *testing.T) {
	h := &report.Handler{Source: staticSource(sampleLedger())}
	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"filter":"all"`)
}

func TestExportHandlerHeaders(t *testing.T) {
	h := &report.Handler{Source: staticSource(sampleLedger())}
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/export?month=2024-03", nil)
	rr := httptest.NewRecorder()
	h.Export(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="Sales_Report_2024-03.csv"`, rr.Header().Get("Content-Disposition"))
	require.True(t, strings.HasPrefix(rr.Body.String(), "Date,Time,Phone Number,Payment Method,Items,Total (INR)\n"))
	require.Equal(t, 3, strings.Count(rr.Body.String(), "\n"))
}
