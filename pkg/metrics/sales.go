package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SalesMetrics counts finalized receipts and the money they carry.
type SalesMetrics struct {
	receipts prometheus.Counter
	items    prometheus.Counter
	amount   prometheus.Counter
	failures *prometheus.CounterVec
}

// NewSalesMetrics registers the sales metrics on the provided registerer.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	receipts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipts_generated_total",
		Help: "Receipts persisted.",
	})
	items := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipt_items_sold_total",
		Help: "Units sold across all receipts.",
	})
	amount := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_amount_total",
		Help: "Sum of receipt totals.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipt_generation_failures_total",
		Help: "Receipt generations that did not persist, by reason.",
	}, []string{"reason"})
	reg.MustRegister(receipts, items, amount, failures)
	return &SalesMetrics{receipts: receipts, items: items, amount: amount, failures: failures}
}

// ObserveReceipt records a stored receipt.
func (m *SalesMetrics) ObserveReceipt(total decimal.Decimal, items int) {
	if m == nil || m.receipts == nil {
		return
	}
	m.receipts.Inc()
	m.items.Add(float64(items))
	f, _ := total.Float64()
	m.amount.Add(f)
}

// IncFailure records a refused or failed receipt generation.
func (m *SalesMetrics) IncFailure(reason string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}
