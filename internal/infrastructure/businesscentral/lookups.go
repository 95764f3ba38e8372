package businesscentral

import (
	"context"
)

// Companies lists the companies of the environment
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	return list[Company](ctx, c, Root().Collection("Company").Select("Name", "Id"))
}

// Vendors lists vendors (APIV2 page 30010)
func (c *Client) Vendors(ctx context.Context) ([]Vendor, error) {
	return list[Vendor](ctx, c, c.company().Collection("Vendors").Select("id", "number", "displayName"))
}

// Vendor looks up one vendor by number; nil when it does not exist
func (c *Client) Vendor(ctx context.Context, number string) (*Vendor, error) {
	path := c.company().Collection("Vendors").
		Filter(Eq("number", number)).
		Select("id", "number", "displayName")
	vendors, err := list[Vendor](ctx, c, path)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, nil
	}
	return &vendors[0], nil
}

// ItemCategories lists item category codes (APIV2 page 30025)
func (c *Client) ItemCategories(ctx context.Context) ([]Lookup, error) {
	return c.codes(ctx, "ItemCategories")
}

// UnitsOfMeasure lists unit of measure codes (APIV2 page 30030)
func (c *Client) UnitsOfMeasure(ctx context.Context) ([]Lookup, error) {
	return c.codes(ctx, "UnitsOfMeasures")
}

// InventoryPostingGroups lists inventory posting group codes (APIV2 page 30096)
func (c *Client) InventoryPostingGroups(ctx context.Context) ([]Lookup, error) {
	return c.codes(ctx, "InventoryPostingGroups")
}

// GeneralProductPostingGroups lists general product posting group codes (APIV2 page 30079)
func (c *Client) GeneralProductPostingGroups(ctx context.Context) ([]Lookup, error) {
	return c.codes(ctx, "GeneralProductPostingGroups")
}

// ItemAttributeDefinitions lists the item attribute definitions (page 7500)
func (c *Client) ItemAttributeDefinitions(ctx context.Context) ([]AttributeDefinition, error) {
	path := c.company().Collection("ItemAttributes").Select("ID", "Name", "Type", "Blocked")
	return list[AttributeDefinition](ctx, c, path)
}

// RoutingLinks lists routing link codes (page 99000798)
func (c *Client) RoutingLinks(ctx context.Context) ([]RoutingLink, error) {
	return list[RoutingLink](ctx, c, c.company().Collection("RoutingLinks"))
}

func (c *Client) codes(ctx context.Context, set string) ([]Lookup, error) {
	return list[Lookup](ctx, c, c.company().Collection(set).Select("id", "code"))
}
