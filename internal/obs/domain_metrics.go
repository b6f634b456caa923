package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// SalesRecordedTotal counts completed checkouts by payment method.
	SalesRecordedTotal *prometheus.CounterVec
	// CatalogMutationsTotal counts catalog mutations by operation and outcome.
	CatalogMutationsTotal *prometheus.CounterVec
	// ReportsGeneratedTotal counts report views by filter kind.
	ReportsGeneratedTotal *prometheus.CounterVec
	// CSVExportsTotal counts generated CSV exports.
	CSVExportsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		SalesRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Count of recorded sales by payment method.",
		}, []string{"payment_method"})
		CatalogMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_mutations_total",
			Help:      "Count of catalog mutations by operation and result.",
		}, []string{"op", "result"})
		ReportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Count of generated sales reports by filter kind.",
		}, []string{"filter"})
		CSVExportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csv_exports_total",
			Help:      "Number of CSV report exports served.",
		})

		mustRegisterCollector(reg, SalesRecordedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				SalesRecordedTotal = v
			}
		})
		mustRegisterCollector(reg, CatalogMutationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogMutationsTotal = v
			}
		})
		mustRegisterCollector(reg, ReportsGeneratedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportsGeneratedTotal = v
			}
		})
		mustRegisterCollector(reg, CSVExportsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CSVExportsTotal = v
			}
		})
	})
}

// IncSaleRecorded bumps the sale counter; safe to call before registration.
func IncSaleRecorded(paymentMethod string) {
	if SalesRecordedTotal != nil {
		SalesRecordedTotal.WithLabelValues(paymentMethod).Inc()
	}
}

// IncCatalogMutation bumps the catalog mutation counter; safe to call before registration.
func IncCatalogMutation(op, result string) {
	if CatalogMutationsTotal != nil {
		CatalogMutationsTotal.WithLabelValues(op, result).Inc()
	}
}

// IncReportGenerated bumps the report counter; safe to call before registration.
func IncReportGenerated(filter string) {
	if ReportsGeneratedTotal != nil {
		ReportsGeneratedTotal.WithLabelValues(filter).Inc()
	}
}

// IncCSVExport bumps the export counter; safe to call before registration.
func IncCSVExport() {
	if CSVExportsTotal != nil {
		CSVExportsTotal.Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
