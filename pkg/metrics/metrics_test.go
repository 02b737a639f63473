package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsCountsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/v1/products", 200, 20*time.Millisecond)
	m.Observe("GET", "/api/v1/products", 200, 10*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "http_requests_total", map[string]string{"route": "/api/v1/products", "status": "200"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	got, err = counterValue(mfs, "http_requests_total", map[string]string{"route": "unmatched"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestSalesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSalesMetrics(reg)
	m.ObserveReceipt(decimal.RequireFromString("59.98"), 2)
	m.IncFailure("validation")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "receipts_generated_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "sales_amount_total", nil)
	require.NoError(t, err)
	assert.InDelta(t, 59.98, got, 0.0001)

	got, err = counterValue(mfs, "receipt_generation_failures_total", map[string]string{"reason": "validation"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestNilRegistererIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
		NewSalesMetrics(nil).ObserveReceipt(decimal.NewFromInt(1), 1)
		var m *SalesMetrics
		m.IncFailure("x")
	})
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matches(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, fmt.Errorf("metric %q with labels %v not found", name, labels)
}

func matches(pairs []*dto.LabelPair, want map[string]string) bool {
	for k, v := range want {
		found := false
		for _, p := range pairs {
			if p.GetName() == k && p.GetValue() == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
