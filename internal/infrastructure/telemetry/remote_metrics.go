package telemetry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Operation results recorded by RecordOperation
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultDegraded = "degraded"
)

// RemoteMetrics records Business Central calls and entity operations.
// A nil *RemoteMetrics is valid and records nothing.
type RemoteMetrics struct {
	callsTotal      *Counter
	callDuration    *Histogram
	operationsTotal *Counter
	advisoriesTotal *Counter
}

// NewRemoteMetrics creates the adapter instruments on meter
func NewRemoteMetrics(meter metric.Meter) (*RemoteMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   RemoteMetrics
		err error
	)

	m.callsTotal, err = NewCounter(meter,
		"bc_remote_calls_total",
		"Total number of requests sent to Business Central",
		"{calls}",
	)
	if err != nil {
		return nil, err
	}

	m.callDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "bc_remote_call_duration_seconds",
		Description: "Latency of requests sent to Business Central",
		Unit:        "s",
		Boundaries:  RemoteDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	m.operationsTotal, err = NewCounter(meter,
		"bc_entity_operations_total",
		"Total number of entity operations by result",
		"{operations}",
	)
	if err != nil {
		return nil, err
	}

	m.advisoriesTotal, err = NewCounter(meter,
		"bc_entity_advisory_failures_total",
		"Best-effort writes that failed without failing the operation",
		"{failures}",
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordCall records one remote request. Status 0 denotes a transport failure.
func (m *RemoteMetrics) RecordCall(ctx context.Context, method string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrHTTPStatusCode.Int(status),
		AttrStatusClass.String(statusClass(status)),
	}
	m.callsTotal.Inc(ctx, attrs...)
	m.callDuration.RecordDuration(ctx, latency, attrs...)
}

// RecordOperation records the result of one entity operation
func (m *RemoteMetrics) RecordOperation(ctx context.Context, entity, operation string, err error, advisories int) {
	if m == nil {
		return
	}
	result := ResultOK
	switch {
	case err != nil:
		result = ResultFailed
	case advisories > 0:
		result = ResultDegraded
	}
	m.operationsTotal.Inc(ctx,
		AttrEntity.String(entity),
		AttrOperation.String(operation),
		AttrResult.String(result),
	)
	if advisories > 0 {
		m.advisoriesTotal.Add(ctx, int64(advisories),
			AttrEntity.String(entity),
			AttrOperation.String(operation),
		)
	}
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
