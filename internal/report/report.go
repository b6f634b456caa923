// Package report is the read side of the sale ledger: month filtering,
// reverse-chronological detail views, day/month/year revenue aggregation and
// CSV export. Everything here is a pure function over a sales slice; the
// ledger is never mutated.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/varuna-collections/pos-api/internal/ledger"
)

// FilterAll selects the whole ledger.
const FilterAll = "all"

// monthKey is the zero-padded selector format ("2024-03").
const monthKey = "2006-01"

// AvailableMonths returns the distinct YYYY-MM buckets present in the
// ledger, most recent first. The implicit FilterAll selector is not part of
// the list; it is always available.
func AvailableMonths(sales []ledger.Sale) []string {
	seen := make(map[string]struct{}, len(sales))
	for _, sale := range sales {
		seen[sale.Date.Format(monthKey)] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for month := range seen {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// FilterByMonth returns the sales whose date falls in the selected YYYY-MM
// bucket. FilterAll (or an empty selector) returns the input unchanged; a
// selector matching nothing returns an empty slice, not an error.
func FilterByMonth(sales []ledger.Sale, selector string) []ledger.Sale {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == FilterAll {
		return sales
	}
	var filtered []ledger.Sale
	for _, sale := range sales {
		if sale.Date.Format(monthKey) == selector {
			filtered = append(filtered, sale)
		}
	}
	return filtered
}

// DetailView returns a copy sorted by date descending. Ties keep insertion
// order; in practice timestamps are unique to the millisecond.
func DetailView(sales []ledger.Sale) []ledger.Sale {
	out := append([]ledger.Sale{}, sales...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Totals holds revenue aggregated per calendar bucket. Buckets with no
// sales are absent, not zero.
type Totals struct {
	// ByDay keys look like "Fri Mar 15 2024".
	ByDay map[string]int64 `json:"byDay"`
	// ByMonth keys look like "2024-3": the month number is not
	// zero-padded, unlike the filter selector. Both formats are part of
	// the observed contract and are kept distinct.
	ByMonth map[string]int64 `json:"byMonth"`
	ByYear  map[int]int64    `json:"byYear"`
}

// Aggregate sums sale totals per day, month and year.
func Aggregate(sales []ledger.Sale) Totals {
	totals := Totals{
		ByDay:   map[string]int64{},
		ByMonth: map[string]int64{},
		ByYear:  map[int]int64{},
	}
	for _, sale := range sales {
		day := sale.Date.Format("Mon Jan 02 2006")
		month := fmt.Sprintf("%d-%d", sale.Date.Year(), int(sale.Date.Month()))
		totals.ByDay[day] += sale.Total
		totals.ByMonth[month] += sale.Total
		totals.ByYear[sale.Date.Year()] += sale.Total
	}
	return totals
}

// ToCSV renders the sales as a UTF-8 CSV document. Row order follows the
// input order; callers sort first if they want a sorted export. The items
// field is always quoted, matching the established export format.
func ToCSV(sales []ledger.Sale) string {
	var b strings.Builder
	b.WriteString("Date,Time,Phone Number,Payment Method,Items,Total (INR)\n")
	for _, sale := range sales {
		items := make([]string, len(sale.Items))
		for i, item := range sale.Items {
			items[i] = fmt.Sprintf("%s @ %d", item.Category, item.Rate)
		}
		joined := strings.ReplaceAll(strings.Join(items, " | "), `"`, `""`)
		fmt.Fprintf(&b, "%s,%s,%s,%s,%q,%.2f\n",
			sale.Date.Format("1/2/2006"),
			sale.Date.Format("3:04:05 PM"),
			sale.Phone,
			sale.PaymentMethod.DisplayText(),
			joined,
			float64(sale.Total),
		)
	}
	return b.String()
}

// CSVFilename names the export after the active filter.
func CSVFilename(selector string) string {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == FilterAll {
		return "Sales_Report_All_Time.csv"
	}
	return fmt.Sprintf("Sales_Report_%s.csv", selector)
}
