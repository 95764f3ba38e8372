package erp

import (
	"context"
	"fmt"

	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/erp/bcadapter/internal/infrastructure/logger"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Pair is one name/value entry of a secondary attribute write
type Pair struct {
	Name  string
	Value string
}

// PairUp zips parallel name and value slices
func PairUp(names, values []string) ([]Pair, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("%w: %d names but %d values", shared.ErrInvalidInput, len(names), len(values))
	}
	pairs := make([]Pair, len(names))
	for i := range names {
		pairs[i] = Pair{Name: names[i], Value: values[i]}
	}
	return pairs, nil
}

// Enricher writes item attributes and record links on a best-effort basis.
// A failed write is logged and reported as an advisory outcome; it never
// fails the surrounding operation.
type Enricher struct {
	remote AttributeWriter
	logger *zap.Logger
}

// NewEnricher creates an Enricher
func NewEnricher(remote AttributeWriter, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{remote: remote, logger: logger}
}

// SetAttributes writes every attribute of the item in order. Empty values
// are written as empty strings so a cleared field clears the attribute.
func (e *Enricher) SetAttributes(ctx context.Context, number string, attrs []Pair) shared.Outcomes {
	out := make(shared.Outcomes, 0, len(attrs))
	for _, a := range attrs {
		err := e.remote.SetItemAttribute(ctx, number, a.Name, a.Value)
		if err != nil {
			e.log(ctx).Warn("Item attribute write failed",
				zap.String("item_number", number),
				zap.String("attribute", a.Name),
				zap.Error(err),
			)
		}
		out = append(out, e.outcome(ctx, number, "attribute "+a.Name, err))
	}
	return out
}

// SetLinks writes every record link of the item in order. Links with an
// empty URL are skipped.
func (e *Enricher) SetLinks(ctx context.Context, number string, links []Pair) shared.Outcomes {
	out := make(shared.Outcomes, 0, len(links))
	for _, l := range links {
		if l.Value == "" {
			continue
		}
		err := e.remote.SetItemLink(ctx, number, l.Name, l.Value)
		if err != nil {
			e.log(ctx).Warn("Item link write failed",
				zap.String("item_number", number),
				zap.String("link", l.Name),
				zap.Error(err),
			)
		}
		out = append(out, e.outcome(ctx, number, "link "+l.Name, err))
	}
	return out
}

// outcome marks a failed write on the active span as well
func (e *Enricher) outcome(ctx context.Context, number, step string, err error) shared.Outcome {
	if err != nil {
		telemetry.AddEvent(trace.SpanFromContext(ctx), "advisory_failure",
			"item_number", number,
			"step", step,
			"error", err.Error(),
		)
	}
	return shared.Advisory(step, err)
}

func (e *Enricher) log(ctx context.Context) *logger.ContextLogger {
	return logger.WithLogger(ctx, e.logger)
}
