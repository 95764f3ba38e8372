package erp

import (
	"context"
	"fmt"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BomHeaderService composes production BOM headers with their rows
type BomHeaderService struct {
	remote   BomRemote
	settings Settings
	obs      observer
}

// NewBomHeaderService creates a new BomHeaderService
func NewBomHeaderService(remote BomRemote, settings Settings, logger *zap.Logger, metrics *telemetry.RemoteMetrics) *BomHeaderService {
	return &BomHeaderService{remote: remote, settings: settings, obs: newObserver(logger, metrics)}
}

// Query answers "Number = x" with at most one header. Rows keep the order
// of the production BOM lines.
func (s *BomHeaderService) Query(ctx context.Context, q erp.Query) (headers []erp.BomHeader, err error) {
	ctx, done := s.obs.start(ctx, entityBomHeader, opQuery, telemetry.WithAttribute(telemetry.SpanAttrQuery, q.String()))
	defer func() { done(err, 0) }()

	if err := q.Only(erp.FieldNumber); err != nil {
		return nil, err
	}
	number, _ := q.Value(erp.FieldNumber)

	var (
		bom  *bc.ProductionBOM
		item *erp.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bom, err = s.remote.BOMHeader(gctx, number)
		return err
	})
	g.Go(func() (err error) {
		item, err = readItem(gctx, s.remote, s.settings, s.obs.logger, number, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bom == nil {
		return []erp.BomHeader{}, nil
	}

	lines := uniqueLines(bom.Lines)
	children, err := gather(ctx, s.settings.concurrency(), len(lines), func(ctx context.Context, i int) (erp.BomRow, error) {
		return composeRow(ctx, s.remote, s.settings, s.obs.logger, lines[i])
	})
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(trace.SpanFromContext(ctx), telemetry.SpanAttrChildCount, len(children))

	return []erp.BomHeader{{
		Number:   bom.No,
		Item:     item,
		Children: children,
	}}, nil
}

// Create creates the production BOM of an existing item and points the item card at it
func (s *BomHeaderService) Create(ctx context.Context, header erp.BomHeader) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityBomHeader, opCreate, telemetry.WithAttribute(telemetry.SpanAttrNumber, header.Number))
	defer func() { done(err, warningCount(res)) }()

	return s.write(ctx, header.Number, s.remote.CreateBOMHeader)
}

// Update refreshes description and unit of the production BOM from its item card
func (s *BomHeaderService) Update(ctx context.Context, header erp.BomHeader) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityBomHeader, opUpdate, telemetry.WithAttribute(telemetry.SpanAttrNumber, header.Number))
	defer func() { done(err, warningCount(res)) }()

	return s.write(ctx, header.Number, s.remote.UpdateBOMHeader)
}

// Delete is not supported
func (s *BomHeaderService) Delete(ctx context.Context, number string) (err error) {
	_, done := s.obs.start(ctx, entityBomHeader, opDelete, telemetry.WithAttribute(telemetry.SpanAttrNumber, number))
	defer func() { done(err, 0) }()

	return fmt.Errorf("%w: BOM header delete", shared.ErrNotSupported)
}

func (s *BomHeaderService) write(
	ctx context.Context,
	number string,
	primary func(context.Context, bc.ProductionBOMWrite) (*bc.ProductionBOM, error),
) (*erp.WriteResult, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: BOM number is required", shared.ErrInvalidInput)
	}

	card, err := s.remote.ItemCard(ctx, number)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("%w: item %s", shared.ErrNotFound, number)
	}

	body := bc.ProductionBOMWrite{
		No:                number,
		Description:       card.Description,
		UnitOfMeasureCode: card.BaseUnitOfMeasure,
	}
	outcomes := runSteps(ctx,
		func(ctx context.Context) shared.Outcomes {
			_, err := primary(ctx, body)
			return shared.Outcomes{shared.Fatal("production BOM", err)}
		},
		func(ctx context.Context) shared.Outcomes {
			_, err := s.remote.UpdateItemCardProductionBOM(ctx, card.No)
			return shared.Outcomes{shared.Fatal("item card production BOM", err)}
		},
	)
	if err := outcomes.Err(); err != nil {
		return nil, err
	}
	return &erp.WriteResult{Key: number}, nil
}

// uniqueLines drops every line whose (parent, position, child) key was already seen
func uniqueLines(lines []bc.ProdBOMLine) []bc.ProdBOMLine {
	seen := make(map[erp.BomRowKey]struct{}, len(lines))
	out := make([]bc.ProdBOMLine, 0, len(lines))
	for _, l := range lines {
		k := erp.BomRowKey{ParentNumber: l.ProductionBOMNo, Position: l.LineNo, ChildNumber: l.No}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}

// composeRow builds the row view of a BOM line, reading the child item
func composeRow(ctx context.Context, remote ItemReader, settings Settings, log *zap.Logger, line bc.ProdBOMLine) (erp.BomRow, error) {
	item, err := readItem(ctx, remote, settings, log, line.No, false)
	if err != nil {
		return erp.BomRow{}, err
	}
	return erp.BomRow{
		ParentNumber:  line.ProductionBOMNo,
		ChildNumber:   line.No,
		Position:      line.LineNo,
		Quantity:      line.QuantityPer,
		IsRawMaterial: line.RoutingLinkCode == settings.RawMaterialMarker,
		Item:          item,
	}, nil
}
