package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/dashsync/errors"
)

func TestNewMetricsRegistry(t *testing.T) {
	r := NewMetricsRegistry()
	require.NotNil(t, r.PrometheusRegistry())
	require.NotNil(t, r.CoreMetrics())

	// Core metrics are registered and scrapeable.
	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestObserveSync(t *testing.T) {
	m := NewMetrics()

	m.ObserveSync("/demo", SyncStatusOK, 3, 50*time.Millisecond)
	m.ObserveSync("/demo", SyncStatusPartial, 1, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncsTotal.WithLabelValues("/demo", SyncStatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncsTotal.WithLabelValues("/demo", SyncStatusPartial)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CardsSynced.WithLabelValues("/demo")))
}

func TestObserveSync_NilReceiver(t *testing.T) {
	var m *Metrics
	// Optional metrics: callers pass nil when metrics are disabled.
	m.ObserveSync("/demo", SyncStatusOK, 1, time.Millisecond)
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "demo_custom_total",
		Help: "test counter",
	})
	require.NoError(t, r.Register("demo", "custom", counter))

	err := r.Register("demo", "custom", counter)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	r := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "demo_other_total",
		Help: "test counter",
	})
	require.NoError(t, r.Register("demo", "other", counter))

	assert.True(t, r.Unregister("demo", "other"))
	assert.False(t, r.Unregister("demo", "other"))

	// Re-registration works after unregister.
	require.NoError(t, r.Register("demo", "other", counter))
}
