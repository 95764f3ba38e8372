package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
)

func setupTestMeter(t *testing.T) (*telemetry.RemoteMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewRemoteMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	want := attribute.NewSet(attrs...)
	var total int64
	for _, dp := range sum.DataPoints {
		match := true
		for _, kv := range want.ToSlice() {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v != kv.Value {
				match = false
				break
			}
		}
		if match {
			total += dp.Value
		}
	}
	return total
}

func TestNewRemoteMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewRemoteMetrics(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestRemoteMetrics_NilIsNoop(t *testing.T) {
	var m *telemetry.RemoteMetrics
	assert.NotPanics(t, func() {
		m.RecordCall(context.Background(), "GET", 200, time.Millisecond)
		m.RecordOperation(context.Background(), "item", "query", nil, 0)
	})
}

func TestRemoteMetrics_RecordCall(t *testing.T) {
	m, reader := setupTestMeter(t)
	ctx := context.Background()

	m.RecordCall(ctx, "GET", 200, 40*time.Millisecond)
	m.RecordCall(ctx, "GET", 200, 60*time.Millisecond)
	m.RecordCall(ctx, "PATCH", 412, 30*time.Millisecond)
	m.RecordCall(ctx, "GET", 0, time.Second)

	metrics := collect(t, reader)
	calls := metrics["bc_remote_calls_total"]
	assert.Equal(t, int64(2), sumFor(t, calls, telemetry.AttrHTTPMethod.String("GET"), telemetry.AttrStatusClass.String("2xx")))
	assert.Equal(t, int64(1), sumFor(t, calls, telemetry.AttrStatusClass.String("4xx")))
	assert.Equal(t, int64(1), sumFor(t, calls, telemetry.AttrStatusClass.String("error")))

	hist, ok := metrics["bc_remote_call_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(4), count)
}

func TestRemoteMetrics_RecordOperation(t *testing.T) {
	m, reader := setupTestMeter(t)
	ctx := context.Background()

	m.RecordOperation(ctx, "item", "create", nil, 0)
	m.RecordOperation(ctx, "item", "create", nil, 2)
	m.RecordOperation(ctx, "item", "create", errors.New("boom"), 0)

	metrics := collect(t, reader)
	ops := metrics["bc_entity_operations_total"]
	assert.Equal(t, int64(1), sumFor(t, ops, telemetry.AttrResult.String(telemetry.ResultOK)))
	assert.Equal(t, int64(1), sumFor(t, ops, telemetry.AttrResult.String(telemetry.ResultDegraded)))
	assert.Equal(t, int64(1), sumFor(t, ops, telemetry.AttrResult.String(telemetry.ResultFailed)))
	assert.Equal(t, int64(2), sumFor(t, metrics["bc_entity_advisory_failures_total"], telemetry.AttrEntity.String("item")))
}
