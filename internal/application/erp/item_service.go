package erp

import (
	"context"
	"fmt"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/logger"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ItemService composes items from item cards, attributes, record links,
// vendors and pictures.
type ItemService struct {
	remote   ItemRemote
	enricher *Enricher
	settings Settings
	obs      observer
}

// NewItemService creates a new ItemService. metrics may be nil.
func NewItemService(remote ItemRemote, settings Settings, logger *zap.Logger, metrics *telemetry.RemoteMetrics) *ItemService {
	return &ItemService{
		remote:   remote,
		enricher: NewEnricher(remote, logger),
		settings: settings,
		obs:      newObserver(logger, metrics),
	}
}

// Query answers "Number = x" with at most one item and the empty query with
// every item. Other filters are not supported.
func (s *ItemService) Query(ctx context.Context, q erp.Query) (items []erp.Item, err error) {
	ctx, done := s.obs.start(ctx, entityItem, opQuery, telemetry.WithAttribute(telemetry.SpanAttrQuery, q.String()))
	defer func() { done(err, 0) }()

	if q.IsEmpty() {
		return s.all(ctx)
	}
	if err := q.Only(erp.FieldNumber); err != nil {
		return nil, err
	}
	number, _ := q.Value(erp.FieldNumber)

	item, err := readItem(ctx, s.remote, s.settings, s.obs.logger, number, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return []erp.Item{}, nil
	}
	return []erp.Item{*item}, nil
}

// all lists every item card with its attributes, links and supplier, in
// the order Business Central returns the cards.
func (s *ItemService) all(ctx context.Context) ([]erp.Item, error) {
	var (
		cards   []bc.ItemCard
		attrs   []bc.Attribute
		links   []bc.Link
		vendors []bc.Vendor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cards, err = s.remote.ItemCards(gctx)
		return err
	})
	g.Go(func() (err error) {
		attrs, err = s.remote.AllItemAttributes(gctx)
		return err
	})
	g.Go(func() (err error) {
		links, err = s.remote.AllItemLinks(gctx)
		return err
	})
	g.Go(func() (err error) {
		vendors, err = s.remote.Vendors(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attrIndex := indexAttributes(attrs)
	linkIndex := indexLinks(links)
	suppliers := make(map[string]string, len(vendors))
	for _, v := range vendors {
		if _, ok := suppliers[v.Number]; !ok {
			suppliers[v.Number] = v.DisplayName
		}
	}

	items := make([]erp.Item, 0, len(cards))
	for _, card := range cards {
		items = append(items, composeItem(card, attrIndex, linkIndex, suppliers[card.VendorNo], s.settings))
	}
	return items, nil
}

// Create writes a new item card, then its picture, attributes and links.
func (s *ItemService) Create(ctx context.Context, item erp.Item) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityItem, opCreate, telemetry.WithAttribute(telemetry.SpanAttrNumber, item.Number))
	defer func() { done(err, warningCount(res)) }()

	return s.write(ctx, item, s.remote.CreateItemCard)
}

// Update patches an existing item card, then its picture, attributes and links.
func (s *ItemService) Update(ctx context.Context, item erp.Item) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityItem, opUpdate, telemetry.WithAttribute(telemetry.SpanAttrNumber, item.Number))
	defer func() { done(err, warningCount(res)) }()

	return s.write(ctx, item, s.remote.UpdateItemCard)
}

// Delete is not supported; items are blocked in Business Central, not removed.
func (s *ItemService) Delete(ctx context.Context, number string) (err error) {
	_, done := s.obs.start(ctx, entityItem, opDelete, telemetry.WithAttribute(telemetry.SpanAttrNumber, number))
	defer func() { done(err, 0) }()

	return fmt.Errorf("%w: item delete", shared.ErrNotSupported)
}

func (s *ItemService) write(
	ctx context.Context,
	item erp.Item,
	primary func(context.Context, bc.ItemCardWrite) (*bc.ItemCard, error),
) (*erp.WriteResult, error) {
	if item.Number == "" {
		return nil, fmt.Errorf("%w: item number is required", shared.ErrInvalidInput)
	}
	attrs, err := PairUp(
		[]string{s.settings.AttributeDescription, s.settings.AttributeMaterial},
		[]string{item.Description, item.Material},
	)
	if err != nil {
		return nil, err
	}
	links, err := PairUp(
		[]string{s.settings.LinkThinClient, s.settings.LinkThickClient},
		[]string{item.ThinClientLink, item.ThickClientLink},
	)
	if err != nil {
		return nil, err
	}

	card, err := primary(ctx, bc.ItemCardWrite{
		No:                item.Number,
		Description:       item.Title,
		BaseUnitOfMeasure: item.UnitOfMeasure,
		NetWeight:         bc.Number(item.Weight),
	})
	if err != nil {
		return nil, err
	}
	number := item.Number
	if card != nil && card.No != "" {
		number = card.No
	}

	outcomes := runSteps(ctx,
		func(ctx context.Context) shared.Outcomes {
			return shared.Outcomes{shared.Fatal("thumbnail", s.remote.SetItemPicture(ctx, number, item.Thumbnail))}
		},
		func(ctx context.Context) shared.Outcomes {
			return s.enricher.SetAttributes(ctx, number, attrs)
		},
		func(ctx context.Context) shared.Outcomes {
			return s.enricher.SetLinks(ctx, number, links)
		},
	)
	if err := outcomes.Err(); err != nil {
		return nil, err
	}
	return &erp.WriteResult{Key: number, Warnings: outcomes.Warnings()}, nil
}

// readItem composes one item; nil when the item card does not exist.
// The picture is only read when withThumbnail is set. Card, attributes and
// links must be read; supplier and picture are left empty when their read
// fails.
func readItem(ctx context.Context, remote ItemReader, settings Settings, log *zap.Logger, number string, withThumbnail bool) (*erp.Item, error) {
	var (
		card  *bc.ItemCard
		attrs []bc.Attribute
		links []bc.Link
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		card, err = remote.ItemCard(gctx, number)
		return err
	})
	g.Go(func() (err error) {
		attrs, err = remote.ItemAttributes(gctx, number)
		return err
	})
	g.Go(func() (err error) {
		links, err = remote.ItemLinks(gctx, number)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if card == nil {
		return nil, nil
	}

	var (
		supplier  string
		thumbnail []byte
		optional  errgroup.Group
	)
	if card.VendorNo != "" {
		optional.Go(func() error {
			vendor, err := remote.Vendor(ctx, card.VendorNo)
			if err != nil {
				logger.WithLogger(ctx, log).Warn("Item supplier read failed",
					zap.String("item_number", number),
					zap.String("vendor_number", card.VendorNo),
					zap.Error(err),
				)
				return nil
			}
			if vendor != nil {
				supplier = vendor.DisplayName
			}
			return nil
		})
	}
	if withThumbnail {
		optional.Go(func() error {
			data, err := remote.ItemPicture(ctx, number)
			if err != nil {
				logger.WithLogger(ctx, log).Warn("Item picture read failed",
					zap.String("item_number", number),
					zap.Error(err),
				)
				return nil
			}
			thumbnail = data
			return nil
		})
	}
	_ = optional.Wait()

	item := composeItem(*card, indexAttributes(attrs), indexLinks(links), supplier, settings)
	item.Thumbnail = thumbnail
	return &item, nil
}

// entryKey addresses an attribute or link of an item by name or label
type entryKey struct {
	item string
	name string
}

// firstMatch keeps the first value seen for every key
type firstMatch map[entryKey]string

func (m firstMatch) add(item, name, value string) {
	k := entryKey{item: item, name: name}
	if _, ok := m[k]; !ok {
		m[k] = value
	}
}

func (m firstMatch) get(item, name string) string {
	return m[entryKey{item: item, name: name}]
}

func indexAttributes(attrs []bc.Attribute) firstMatch {
	m := make(firstMatch, len(attrs))
	for _, a := range attrs {
		m.add(a.ItemNumber, a.Attribute, a.Value)
	}
	return m
}

func indexLinks(links []bc.Link) firstMatch {
	m := make(firstMatch, len(links))
	for _, l := range links {
		m.add(l.ItemNumber, l.Description, l.URL)
	}
	return m
}

func composeItem(card bc.ItemCard, attrs, links firstMatch, supplier string, settings Settings) erp.Item {
	return erp.Item{
		Number:          card.No,
		Title:           card.Description,
		Description:     attrs.get(card.No, settings.AttributeDescription),
		UnitOfMeasure:   card.BaseUnitOfMeasure,
		Weight:          card.NetWeight,
		Material:        attrs.get(card.No, settings.AttributeMaterial),
		Price:           card.UnitPrice,
		Stock:           card.Inventory,
		MakeBuy:         card.ReplenishmentSystem == settings.PurchaseIndicator,
		Blocked:         card.Blocked,
		Supplier:        supplier,
		ThinClientLink:  links.get(card.No, settings.LinkThinClient),
		ThickClientLink: links.get(card.No, settings.LinkThickClient),
	}
}
