package erp

import (
	"context"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Entity names used in spans, metrics and log fields
const (
	entityItem      = "item"
	entityBomHeader = "bom_header"
	entityBomRow    = "bom_row"
	entityDocument  = "document"
)

// Operation names
const (
	opQuery    = "query"
	opCreate   = "create"
	opUpdate   = "update"
	opDelete   = "delete"
	opDownload = "download"
	opUpload   = "upload"
)

// observer traces and counts entity operations
type observer struct {
	logger  *zap.Logger
	metrics *telemetry.RemoteMetrics
}

func newObserver(logger *zap.Logger, metrics *telemetry.RemoteMetrics) observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return observer{logger: logger, metrics: metrics}
}

// start opens the span of one operation. The returned func ends it and
// must be called with the operation's error and its advisory failure count.
func (o observer) start(ctx context.Context, entity, operation string, opts ...telemetry.SpanOption) (context.Context, func(err error, advisories int)) {
	ctx, span := telemetry.StartServiceSpan(ctx, entity, operation, opts...)
	return ctx, func(err error, advisories int) {
		if advisories > 0 {
			telemetry.SetAttributes(span, telemetry.SpanAttrWarnings, advisories)
		}
		telemetry.RecordError(span, err)
		o.metrics.RecordOperation(ctx, entity, operation, err, advisories)
		span.End()
	}
}

func warningCount(res *erp.WriteResult) int {
	if res == nil {
		return 0
	}
	return len(res.Warnings)
}
