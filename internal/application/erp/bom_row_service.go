package erp

import (
	"context"
	"fmt"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BomRowService reads and writes single production BOM lines
type BomRowService struct {
	remote   BomRemote
	settings Settings
	obs      observer
}

// NewBomRowService creates a new BomRowService
func NewBomRowService(remote BomRemote, settings Settings, logger *zap.Logger, metrics *telemetry.RemoteMetrics) *BomRowService {
	return &BomRowService{remote: remote, settings: settings, obs: newObserver(logger, metrics)}
}

// Query needs all three key fields and answers with at most one row
func (s *BomRowService) Query(ctx context.Context, q erp.Query) (rows []erp.BomRow, err error) {
	ctx, done := s.obs.start(ctx, entityBomRow, opQuery, telemetry.WithAttribute(telemetry.SpanAttrQuery, q.String()))
	defer func() { done(err, 0) }()

	if err := q.Only(erp.FieldParentNumber, erp.FieldPosition, erp.FieldChildNumber); err != nil {
		return nil, err
	}
	parent, _ := q.Value(erp.FieldParentNumber)
	child, _ := q.Value(erp.FieldChildNumber)
	position, err := q.IntValue(erp.FieldPosition)
	if err != nil {
		return nil, err
	}

	line, err := s.remote.BOMLine(ctx, parent, position, child)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return []erp.BomRow{}, nil
	}

	row, err := composeRow(ctx, s.remote, s.settings, s.obs.logger, *line)
	if err != nil {
		return nil, err
	}
	return []erp.BomRow{row}, nil
}

// Create adds a line for the child item to the production BOM
func (s *BomRowService) Create(ctx context.Context, row erp.BomRow) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityBomRow, opCreate, rowAttribute(row.Key()))
	defer func() { done(err, 0) }()

	body, err := s.lineBody(ctx, row, false)
	if err != nil {
		return nil, err
	}
	if _, err := s.remote.CreateBOMLine(ctx, body); err != nil {
		return nil, err
	}
	return &erp.WriteResult{Key: rowKey(row.Key())}, nil
}

// Update rewrites quantity, description and raw material flag of a line
func (s *BomRowService) Update(ctx context.Context, row erp.BomRow) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityBomRow, opUpdate, rowAttribute(row.Key()))
	defer func() { done(err, 0) }()

	body, err := s.lineBody(ctx, row, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.remote.UpdateBOMLine(ctx, body); err != nil {
		return nil, err
	}
	return &erp.WriteResult{Key: rowKey(row.Key())}, nil
}

// Delete removes the line addressed by key
func (s *BomRowService) Delete(ctx context.Context, key erp.BomRowKey) (err error) {
	ctx, done := s.obs.start(ctx, entityBomRow, opDelete, rowAttribute(key))
	defer func() { done(err, 0) }()

	if err := validateRowKey(key); err != nil {
		return err
	}
	return s.remote.DeleteBOMLine(ctx, key.ParentNumber, key.Position, key.ChildNumber)
}

// lineBody builds the write body of a row, taking the description from
// the child's item card. An update always carries the routing link code so
// a line that stops being raw material loses its marker.
func (s *BomRowService) lineBody(ctx context.Context, row erp.BomRow, update bool) (bc.ProdBOMLineWrite, error) {
	if err := validateRowKey(row.Key()); err != nil {
		return bc.ProdBOMLineWrite{}, err
	}
	if row.Quantity.IsNegative() {
		return bc.ProdBOMLineWrite{}, fmt.Errorf("%w: quantity cannot be negative", shared.ErrInvalidInput)
	}

	card, err := s.remote.ItemCardMin(ctx, row.ChildNumber)
	if err != nil {
		return bc.ProdBOMLineWrite{}, err
	}
	if card == nil {
		return bc.ProdBOMLineWrite{}, fmt.Errorf("%w: item %s", shared.ErrNotFound, row.ChildNumber)
	}

	body := bc.ProdBOMLineWrite{
		ProductionBOMNo: row.ParentNumber,
		LineNo:          row.Position,
		No:              row.ChildNumber,
		Description:     card.Description,
		QuantityPer:     bc.Number(row.Quantity),
	}
	switch {
	case row.IsRawMaterial:
		body.RoutingLinkCode = bc.Code(s.settings.RawMaterialMarker)
	case update:
		body.RoutingLinkCode = bc.Code("")
	}
	return body, nil
}

func validateRowKey(k erp.BomRowKey) error {
	switch {
	case k.ParentNumber == "":
		return fmt.Errorf("%w: parent number is required", shared.ErrInvalidInput)
	case k.ChildNumber == "":
		return fmt.Errorf("%w: child number is required", shared.ErrInvalidInput)
	case k.Position <= 0:
		return fmt.Errorf("%w: position must be positive", shared.ErrInvalidInput)
	}
	return nil
}

func rowKey(k erp.BomRowKey) string {
	return fmt.Sprintf("%s/%d/%s", k.ParentNumber, k.Position, k.ChildNumber)
}

func rowAttribute(k erp.BomRowKey) telemetry.SpanOption {
	return telemetry.WithAttribute(telemetry.SpanAttrNumber, rowKey(k))
}
