package businesscentral

import (
	"context"
	"fmt"
	"net/http"
)

var (
	bomLineFields    = []string{"Production_BOM_No", "Line_No", "No", "Description", "Quantity_per", "Unit_of_Measure_Code", "Routing_Link_Code"}
	bomLineMinFields = []string{"Production_BOM_No", "Line_No", "No"}
	bomHeaderFields  = []string{"No", "Description", "Unit_of_Measure_Code"}
)

const (
	bomStatusNew    = "New"
	bomLineTypeItem = "Item"
)

// ----- Page 99000786 Production BOM -----

// BOMHeaderMin reads the identity and concurrency tag of a BOM header; nil when it does not exist
func (c *Client) BOMHeaderMin(ctx context.Context, number string) (*ProductionBOMMin, error) {
	path := c.company().Entity("ProductionBOMs", StringKey(number)).Select("No")
	return find[ProductionBOMMin](ctx, c, path)
}

// BOMHeader reads a BOM header with its lines expanded; nil when it does not exist
func (c *Client) BOMHeader(ctx context.Context, number string) (*ProductionBOM, error) {
	path := c.company().Entity("ProductionBOMs", StringKey(number)).
		Expand("ProductionBOMsProdBOMLine", bomLineFields...).
		Select(bomHeaderFields...)
	return find[ProductionBOM](ctx, c, path)
}

// CreateBOMHeader creates a BOM header in status New
func (c *Client) CreateBOMHeader(ctx context.Context, header ProductionBOMWrite) (*ProductionBOM, error) {
	body := ProductionBOMWrite{
		No:                header.No,
		Description:       header.Description,
		UnitOfMeasureCode: header.UnitOfMeasureCode,
		Status:            bomStatusNew,
	}
	return send[ProductionBOM](ctx, c, http.MethodPost, c.company().Collection("ProductionBOMs"), "", body)
}

// UpdateBOMHeader patches description and unit of an existing BOM header
func (c *Client) UpdateBOMHeader(ctx context.Context, header ProductionBOMWrite) (*ProductionBOM, error) {
	current, err := c.BOMHeaderMin(ctx, header.No)
	if err != nil {
		return nil, err
	}
	var etag string
	if current != nil {
		etag = current.ETag
	}
	if err := requireTag("production BOM "+header.No, etag, current != nil); err != nil {
		return nil, err
	}

	body := ProductionBOMWrite{
		No:                header.No,
		Description:       header.Description,
		UnitOfMeasureCode: header.UnitOfMeasureCode,
	}
	path := c.company().Entity("ProductionBOMs", StringKey(header.No))
	return send[ProductionBOM](ctx, c, http.MethodPatch, path, etag, body)
}

// ----- Page 99000788 Production BOM Lines -----

// bomLinePath addresses a line by (BOM number, version, line number). Lines of
// the certified BOM live in the empty version, and the child item number is
// not part of the key, so it is matched with an additional filter.
func (c *Client) bomLinePath(parent string, position int) Path {
	return c.company().Entity("ProductionBOMLines", StringKey(parent), StringKey(""), IntKey(position))
}

// BOMLineMin reads the identity and concurrency tag of a line; nil when it does not exist
func (c *Client) BOMLineMin(ctx context.Context, parent string, position int, child string) (*ProdBOMLineMin, error) {
	path := c.bomLinePath(parent, position).Filter(Eq("No", child)).Select(bomLineMinFields...)
	return find[ProdBOMLineMin](ctx, c, path)
}

// BOMLine reads one line; nil when it does not exist
func (c *Client) BOMLine(ctx context.Context, parent string, position int, child string) (*ProdBOMLine, error) {
	path := c.bomLinePath(parent, position).Filter(Eq("No", child)).Select(bomLineFields...)
	return find[ProdBOMLine](ctx, c, path)
}

// CreateBOMLine creates an item line
func (c *Client) CreateBOMLine(ctx context.Context, line ProdBOMLineWrite) (*ProdBOMLine, error) {
	line.Type = bomLineTypeItem
	return send[ProdBOMLine](ctx, c, http.MethodPost, c.company().Collection("ProductionBOMLines"), "", line)
}

// UpdateBOMLine replaces an existing item line under its current concurrency tag
func (c *Client) UpdateBOMLine(ctx context.Context, line ProdBOMLineWrite) (*ProdBOMLine, error) {
	etag, err := c.bomLineTag(ctx, line.ProductionBOMNo, line.LineNo, line.No)
	if err != nil {
		return nil, err
	}
	line.Type = bomLineTypeItem
	return send[ProdBOMLine](ctx, c, http.MethodPatch, c.bomLinePath(line.ProductionBOMNo, line.LineNo), etag, line)
}

// DeleteBOMLine deletes an existing line under its current concurrency tag
func (c *Client) DeleteBOMLine(ctx context.Context, parent string, position int, child string) error {
	etag, err := c.bomLineTag(ctx, parent, position, child)
	if err != nil {
		return err
	}
	return c.sendNoContent(ctx, http.MethodDelete, c.bomLinePath(parent, position), etag, nil)
}

func (c *Client) bomLineTag(ctx context.Context, parent string, position int, child string) (string, error) {
	current, err := c.BOMLineMin(ctx, parent, position, child)
	if err != nil {
		return "", err
	}
	var etag string
	if current != nil {
		etag = current.ETag
	}
	what := fmt.Sprintf("production BOM line %s/%d/%s", parent, position, child)
	if err := requireTag(what, etag, current != nil); err != nil {
		return "", err
	}
	return etag, nil
}
