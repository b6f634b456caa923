package report

import (
	"fmt"
	"net/http"

	"github.com/varuna-collections/pos-api/internal/common"
	"github.com/varuna-collections/pos-api/internal/ledger"
	"github.com/varuna-collections/pos-api/internal/obs"
)

// SalesSource is the slice of the ledger the report engine reads.
type SalesSource interface {
	All() []ledger.Sale
}

// Handler serves the reporting endpoints.
type Handler struct {
	Source SalesSource
}

// Months lists the selectable filters: "all" plus every month that has at
// least one sale, most recent first.
func (h *Handler) Months(w http.ResponseWriter, r *http.Request) {
	months := append([]string{FilterAll}, AvailableMonths(h.Source.All())...)
	common.JSONData(w, http.StatusOK, map[string]any{"months": months})
}

// Get returns the filtered detail rows (newest first) together with the
// day/month/year totals for the same selection.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("month")
	if selector == "" {
		selector = FilterAll
	}
	filtered := FilterByMonth(h.Source.All(), selector)

	kind := "month"
	if selector == FilterAll {
		kind = FilterAll
	}
	obs.IncReportGenerated(kind)

	common.JSONData(w, http.StatusOK, map[string]any{
		"filter": selector,
		"count":  len(filtered),
		"sales":  DetailView(filtered),
		"totals": Aggregate(filtered),
	})
}

// Export streams the filtered ledger as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("month")
	if selector == "" {
		selector = FilterAll
	}
	filtered := FilterByMonth(h.Source.All(), selector)

	obs.IncCSVExport()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", CSVFilename(selector)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ToCSV(filtered)))
}
