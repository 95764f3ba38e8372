package erp

import (
	"context"
	"slices"

	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DirectoryReport summarizes the code tables of the company and the
// configured codes that are missing from them.
type DirectoryReport struct {
	Companies                   []string `json:"companies"`
	Vendors                     int      `json:"vendors"`
	ItemCategories              []string `json:"item_categories"`
	UnitsOfMeasure              []string `json:"units_of_measure"`
	InventoryPostingGroups      []string `json:"inventory_posting_groups"`
	GeneralProductPostingGroups []string `json:"general_product_posting_groups"`
	RoutingLinks                []string `json:"routing_links"`
	ItemAttributes              []string `json:"item_attributes"`
	Missing                     []string `json:"missing,omitempty"`
}

// Directory checks configured codes against the company's code tables
type Directory struct {
	remote   DirectoryRemote
	defaults bc.Defaults
	settings Settings
	logger   *zap.Logger
}

// NewDirectory creates a Directory
func NewDirectory(remote DirectoryRemote, defaults bc.Defaults, settings Settings, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{remote: remote, defaults: defaults, settings: settings, logger: logger}
}

// Check loads the code tables once and logs a warning for every configured
// code Business Central does not know. Only a failed read is an error.
func (d *Directory) Check(ctx context.Context) (*DirectoryReport, error) {
	var (
		report     DirectoryReport
		companies  []bc.Company
		vendors    []bc.Vendor
		categories []bc.Lookup
		units      []bc.Lookup
		inventory  []bc.Lookup
		general    []bc.Lookup
		routing    []bc.RoutingLink
		attributes []bc.AttributeDefinition
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		companies, err = d.remote.Companies(gctx)
		return err
	})
	g.Go(func() (err error) {
		vendors, err = d.remote.Vendors(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = d.remote.ItemCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		units, err = d.remote.UnitsOfMeasure(gctx)
		return err
	})
	g.Go(func() (err error) {
		inventory, err = d.remote.InventoryPostingGroups(gctx)
		return err
	})
	g.Go(func() (err error) {
		general, err = d.remote.GeneralProductPostingGroups(gctx)
		return err
	})
	g.Go(func() (err error) {
		routing, err = d.remote.RoutingLinks(gctx)
		return err
	})
	g.Go(func() (err error) {
		attributes, err = d.remote.ItemAttributeDefinitions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range companies {
		report.Companies = append(report.Companies, c.Name)
	}
	report.Vendors = len(vendors)
	report.ItemCategories = codes(categories)
	report.UnitsOfMeasure = codes(units)
	report.InventoryPostingGroups = codes(inventory)
	report.GeneralProductPostingGroups = codes(general)
	for _, r := range routing {
		report.RoutingLinks = append(report.RoutingLinks, r.Code)
	}
	for _, a := range attributes {
		if !a.Blocked {
			report.ItemAttributes = append(report.ItemAttributes, a.Name)
		}
	}

	checks := []struct {
		setting string
		value   string
		known   []string
	}{
		{"defaults.inventory_posting_group", d.defaults.InventoryPostingGroup, report.InventoryPostingGroups},
		{"defaults.item_category_code", d.defaults.ItemCategoryCode, report.ItemCategories},
		{"defaults.gen_prod_posting_group", d.defaults.GenProdPostingGroup, report.GeneralProductPostingGroups},
		{"defaults.routing_link_raw_material", d.defaults.RoutingLinkRawMaterial, report.RoutingLinks},
		{"enrichment.attribute_description", d.settings.AttributeDescription, report.ItemAttributes},
		{"enrichment.attribute_material", d.settings.AttributeMaterial, report.ItemAttributes},
	}
	for _, c := range checks {
		if c.value == "" || slices.Contains(c.known, c.value) {
			continue
		}
		report.Missing = append(report.Missing, c.setting+"="+c.value)
		d.logger.Warn("Configured code is unknown to Business Central",
			zap.String("setting", c.setting),
			zap.String("value", c.value),
		)
	}

	d.logger.Info("Business Central directory loaded",
		zap.Int("vendors", report.Vendors),
		zap.Int("item_categories", len(report.ItemCategories)),
		zap.Int("units_of_measure", len(report.UnitsOfMeasure)),
		zap.Int("routing_links", len(report.RoutingLinks)),
		zap.Int("missing", len(report.Missing)),
	)
	return &report, nil
}

func codes(lookups []bc.Lookup) []string {
	out := make([]string, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, l.Code)
	}
	return out
}
