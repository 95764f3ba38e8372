package businesscentral

import (
	"context"
	"fmt"
	"net/http"

	"github.com/erp/bcadapter/internal/domain/shared"
)

// Page 30 Item Card projections
var (
	itemCardFields    = []string{"No", "Description", "Blocked", "Type", "Base_Unit_of_Measure", "Net_Weight", "Unit_Price", "Inventory", "Gen_Prod_Posting_Group", "Vendor_No", "Replenishment_System"}
	itemCardMinFields = []string{"No", "Description"}
)

const (
	itemTypeInventory = "Inventory"
)

// ----- APIV2 Items -----

// ItemMin looks up the APIV2 identity of an item; nil when it does not exist
func (c *Client) ItemMin(ctx context.Context, number string) (*ItemMin, error) {
	path := c.company().Collection("Items").
		Filter(Eq("number", number)).
		Select("id", "number")
	items, err := list[ItemMin](ctx, c, path)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// itemMinWithPicture expands the picture navigation of an item
func (c *Client) itemMinWithPicture(ctx context.Context, number string) (*ItemMin, error) {
	path := c.company().Collection("Items").
		Filter(Eq("number", number)).
		Expand("Itemspicture", "id", "pictureContent").
		Select("id", "number")
	items, err := list[ItemMin](ctx, c, path)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// ItemPicture downloads the picture of an item; nil when the item or picture is absent
func (c *Client) ItemPicture(ctx context.Context, number string) ([]byte, error) {
	item, err := c.itemMinWithPicture(ctx, number)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Picture == nil || item.Picture.MediaReadLink == "" {
		return nil, nil
	}
	data, err := c.download(ctx, item.Picture.MediaReadLink)
	if IsNotFound(err) {
		return nil, nil
	}
	return data, err
}

// SetItemPicture replaces the picture of an item. Empty data is a no-op.
func (c *Client) SetItemPicture(ctx context.Context, number string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	item, err := c.itemMinWithPicture(ctx, number)
	if err != nil {
		return err
	}
	var etag string
	if item != nil && item.Picture != nil {
		etag = item.Picture.ETag
	}
	if err := requireTag(fmt.Sprintf("picture of item %s", number), etag, item != nil); err != nil {
		return err
	}

	path := c.company().Entity("Items", GUIDKey(item.ID)).Collection("Itemspicture").Collection("pictureContent")
	return c.upload(ctx, path, etag, contentTypeOctet, data)
}

// ----- Page 30 Item Card -----

// ItemCards lists every item card
func (c *Client) ItemCards(ctx context.Context) ([]ItemCard, error) {
	return list[ItemCard](ctx, c, c.company().Collection("ItemCards").Select(itemCardFields...))
}

// ItemCard reads one item card; nil when it does not exist
func (c *Client) ItemCard(ctx context.Context, number string) (*ItemCard, error) {
	path := c.company().Entity("ItemCards", StringKey(number)).Select(itemCardFields...)
	return find[ItemCard](ctx, c, path)
}

// ItemCardMin reads the identity and concurrency tag of an item card; nil when it does not exist
func (c *Client) ItemCardMin(ctx context.Context, number string) (*ItemCardMin, error) {
	path := c.company().Entity("ItemCards", StringKey(number)).Select(itemCardMinFields...)
	return find[ItemCardMin](ctx, c, path)
}

// CreateItemCard creates an item card, filling the codes Business Central
// requires from the configured defaults.
func (c *Client) CreateItemCard(ctx context.Context, card ItemCardWrite) (*ItemCard, error) {
	if card.No == "" {
		return nil, ErrItemNumberRequired
	}
	blocked := false
	body := ItemCardWrite{
		No:                    card.No,
		Description:           card.Description,
		Blocked:               &blocked,
		Type:                  itemTypeInventory,
		BaseUnitOfMeasure:     card.BaseUnitOfMeasure,
		NetWeight:             card.NetWeight,
		InventoryPostingGroup: c.defaults.InventoryPostingGroup,
		ItemCategoryCode:      c.defaults.ItemCategoryCode,
		GenProdPostingGroup:   c.defaults.GenProdPostingGroup,
		ReplenishmentSystem:   c.defaults.ReplenishmentSystem,
	}
	return send[ItemCard](ctx, c, http.MethodPost, c.company().Collection("ItemCards"), "", body)
}

// UpdateItemCard patches number, description, unit and weight of an existing card
func (c *Client) UpdateItemCard(ctx context.Context, card ItemCardWrite) (*ItemCard, error) {
	if card.No == "" {
		return nil, ErrItemNumberRequired
	}
	current, err := c.ItemCardMin(ctx, card.No)
	if err != nil {
		return nil, err
	}
	if err := requireTag("item card "+card.No, etagOf(current), current != nil); err != nil {
		return nil, err
	}

	body := ItemCardWrite{
		No:                card.No,
		Description:       card.Description,
		BaseUnitOfMeasure: card.BaseUnitOfMeasure,
		NetWeight:         card.NetWeight,
	}
	path := c.company().Entity("ItemCards", StringKey(card.No))
	return send[ItemCard](ctx, c, http.MethodPatch, path, current.ETag, body)
}

// UpdateItemCardProductionBOM points the item card at the production BOM of the same number
func (c *Client) UpdateItemCardProductionBOM(ctx context.Context, number string) (*ItemCard, error) {
	current, err := c.ItemCardMin(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := requireTag("item card "+number, etagOf(current), current != nil); err != nil {
		return nil, err
	}

	body := ItemCardWrite{ProductionBOMNo: number}
	path := c.company().Entity("ItemCards", StringKey(current.No))
	return send[ItemCard](ctx, c, http.MethodPatch, path, current.ETag, body)
}

func etagOf(card *ItemCardMin) string {
	if card == nil {
		return ""
	}
	return card.ETag
}

// ErrItemNumberRequired is returned when a write carries no item number
var ErrItemNumberRequired = fmt.Errorf("%w: item number is required", shared.ErrInvalidInput)
