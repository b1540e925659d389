package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewAPIMetrics_AllCollectorsPresent(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newAPIMetricsWithRegisterer(reg)

	if m == nil {
		t.Fatal("newAPIMetricsWithRegisterer should not return nil")
	}
	if m.requests == nil {
		t.Error("requests counter vec should not be nil")
	}
	if m.requestDuration == nil {
		t.Error("requestDuration histogram vec should not be nil")
	}
}

func TestAPIMetrics_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newAPIMetricsWithRegisterer(reg)

	m.RecordRequest("fetch_cart", OutcomeOK, 50*time.Millisecond)
	m.RecordRequest("fetch_cart", OutcomeOK, 70*time.Millisecond)
	m.RecordRequest("fetch_cart", OutcomeHTTP, 10*time.Millisecond)

	metric := &dto.Metric{}
	counter, err := m.requests.GetMetricWithLabelValues("fetch_cart", OutcomeOK)
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestAPIMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *APIMetrics
	// Не должно паниковать: метрики отключаются передачей nil.
	m.RecordRequest("fetch_cart", OutcomeOK, time.Millisecond)
}

func TestOutcomeForStatus(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{status: 401, want: OutcomeAuth},
		{status: 403, want: OutcomeAuth},
		{status: 422, want: OutcomeHTTP},
		{status: 500, want: OutcomeHTTP},
	}
	for _, tc := range cases {
		if got := OutcomeForStatus(tc.status); got != tc.want {
			t.Errorf("status %d: got %q want %q", tc.status, got, tc.want)
		}
	}
}

func TestCartMetrics_RecordOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newCartMetricsWithRegisterer(reg)

	m.RecordOp(CartOpAdd)
	m.RecordOp(CartOpAdd)
	m.RecordOpFailure(CartOpAdd)
	m.SetItemCount(3)
	m.RecordRefreshDuration(120 * time.Millisecond)
	m.RecordCacheEvictions(2)
	m.RecordCacheEvictions(0)

	metric := &dto.Metric{}
	counter, err := m.ops.GetMetricWithLabelValues(CartOpAdd)
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected ops counter 2.0, got %f", metric.Counter.GetValue())
	}

	gaugeMetric := &dto.Metric{}
	if err := m.items.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 3.0 {
		t.Errorf("expected items gauge 3.0, got %f", gaugeMetric.Gauge.GetValue())
	}

	evictions := &dto.Metric{}
	if err := m.cacheEvictions.Write(evictions); err != nil {
		t.Fatalf("failed to write counter: %v", err)
	}
	if evictions.Counter.GetValue() != 2.0 {
		t.Errorf("expected evictions counter 2.0, got %f", evictions.Counter.GetValue())
	}
}

func TestCartMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newCartMetricsWithRegisterer(reg)
	second := newCartMetricsWithRegisterer(reg)

	// Повторная регистрация не должна паниковать и обязана вернуть
	// уже существующие коллекторы.
	if first.refreshDuration != second.refreshDuration {
		t.Error("expected the same histogram instance on re-registration")
	}
}
