package businesscentral

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models use the field names of the Business Central pages verbatim.

// Collection is an OData collection answer
type Collection[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink,omitempty"`
}

// Company is an entry of the Company set
type Company struct {
	ID   uuid.UUID `json:"Id"`
	Name string    `json:"Name"`
}

// Vendor is a row of APIV2 - Vendors
type Vendor struct {
	ETag        string    `json:"@odata.etag"`
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	DisplayName string    `json:"displayName"`
}

// Lookup is a code list row (item categories, units, posting groups)
type Lookup struct {
	ETag string    `json:"@odata.etag"`
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// AttributeDefinition is a row of the Item Attributes page
type AttributeDefinition struct {
	ETag    string `json:"@odata.etag"`
	ID      int    `json:"ID"`
	Name    string `json:"Name"`
	Type    string `json:"Type"`
	Blocked bool   `json:"Blocked"`
}

// RoutingLink is a row of the Routing Links page
type RoutingLink struct {
	ETag        string `json:"@odata.etag"`
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

// ItemCard is the Item Card page projection used for items
type ItemCard struct {
	ETag                string          `json:"@odata.etag"`
	No                  string          `json:"No"`
	Description         string          `json:"Description"`
	Blocked             bool            `json:"Blocked"`
	Type                string          `json:"Type"`
	BaseUnitOfMeasure   string          `json:"Base_Unit_of_Measure"`
	NetWeight           decimal.Decimal `json:"Net_Weight"`
	UnitPrice           decimal.Decimal `json:"Unit_Price"`
	Inventory           decimal.Decimal `json:"Inventory"`
	GenProdPostingGroup string          `json:"Gen_Prod_Posting_Group"`
	VendorNo            string          `json:"Vendor_No"`
	ReplenishmentSystem string          `json:"Replenishment_System"`
	ProductionBOMNo     string          `json:"Production_BOM_No,omitempty"`
}

// ItemCardMin carries the identity and concurrency tag of an item card
type ItemCardMin struct {
	ETag        string `json:"@odata.etag"`
	No          string `json:"No"`
	Description string `json:"Description"`
}

// ItemMin is the APIV2 item identity, optionally with its picture
type ItemMin struct {
	ETag    string       `json:"@odata.etag"`
	ID      uuid.UUID    `json:"id"`
	Number  string       `json:"number"`
	Picture *ItemPicture `json:"Itemspicture,omitempty"`
}

// ItemPicture is the picture navigation of an APIV2 item
type ItemPicture struct {
	ETag          string    `json:"@odata.etag"`
	ID            uuid.UUID `json:"id"`
	MediaEditLink string    `json:"pictureContent@odata.mediaEditLink"`
	MediaReadLink string    `json:"pictureContent@odata.mediaReadLink"`
}

// ProductionBOM is a production BOM header with its expanded lines
type ProductionBOM struct {
	ETag              string        `json:"@odata.etag"`
	No                string        `json:"No"`
	Description       string        `json:"Description"`
	UnitOfMeasureCode string        `json:"Unit_of_Measure_Code"`
	Lines             []ProdBOMLine `json:"ProductionBOMsProdBOMLine"`
}

// ProductionBOMMin carries the identity and concurrency tag of a BOM header
type ProductionBOMMin struct {
	ETag string `json:"@odata.etag"`
	No   string `json:"No"`
}

// ProdBOMLine is a production BOM line
type ProdBOMLine struct {
	ETag              string          `json:"@odata.etag"`
	ProductionBOMNo   string          `json:"Production_BOM_No"`
	LineNo            int             `json:"Line_No"`
	No                string          `json:"No"`
	Description       string          `json:"Description"`
	QuantityPer       decimal.Decimal `json:"Quantity_per"`
	UnitOfMeasureCode string          `json:"Unit_of_Measure_Code"`
	RoutingLinkCode   string          `json:"Routing_Link_Code"`
}

// ProdBOMLineMin carries the identity and concurrency tag of a BOM line
type ProdBOMLineMin struct {
	ETag            string `json:"@odata.etag"`
	ProductionBOMNo string `json:"Production_BOM_No"`
	LineNo          int    `json:"Line_No"`
	No              string `json:"No"`
}

// DocumentAttachment is a row of APIV2 - Document Attachments
type DocumentAttachment struct {
	ETag          string    `json:"@odata.etag"`
	ID            uuid.UUID `json:"id"`
	FileName      string    `json:"fileName"`
	ByteSize      int       `json:"byteSize"`
	ParentType    string    `json:"parentType"`
	ParentID      uuid.UUID `json:"parentId"`
	LineNumber    int       `json:"lineNumber"`
	MediaEditLink string    `json:"attachmentContent@odata.mediaEditLink"`
	MediaReadLink string    `json:"attachmentContent@odata.mediaReadLink"`
}

// Attribute is one item attribute value returned by the attributes codeunit
type Attribute struct {
	ItemNumber string `json:"itemNumber"`
	Attribute  string `json:"attribute"`
	Value      string `json:"value"`
}

// Link is one record link returned by the record links codeunit
type Link struct {
	ItemNumber  string `json:"itemNumber"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Write models. Business Central rejects unknown or null members on some
// pages, so every optional member is omitted when empty and field names
// are the lower camel form of the page field.

// ItemCardWrite is the body of item card create and update
type ItemCardWrite struct {
	No                    string      `json:"no,omitempty"`
	Description           string      `json:"description,omitempty"`
	Blocked               *bool       `json:"blocked,omitempty"`
	Type                  string      `json:"type,omitempty"`
	BaseUnitOfMeasure     string      `json:"base_Unit_of_Measure,omitempty"`
	NetWeight             json.Number `json:"net_Weight,omitempty"`
	InventoryPostingGroup string      `json:"inventory_Posting_Group,omitempty"`
	ItemCategoryCode      string      `json:"item_Category_Code,omitempty"`
	GenProdPostingGroup   string      `json:"gen_Prod_Posting_Group,omitempty"`
	ReplenishmentSystem   string      `json:"replenishment_System,omitempty"`
	ProductionBOMNo       string      `json:"production_BOM_No,omitempty"`
}

// ProductionBOMWrite is the body of BOM header create and update
type ProductionBOMWrite struct {
	No                string `json:"no,omitempty"`
	Description       string `json:"description,omitempty"`
	UnitOfMeasureCode string `json:"unit_of_Measure_Code,omitempty"`
	Status            string `json:"status,omitempty"`
}

// ProdBOMLineWrite is the body of BOM line create and update. A nil
// RoutingLinkCode leaves the field out; a pointer to "" clears it.
type ProdBOMLineWrite struct {
	ProductionBOMNo   string      `json:"production_BOM_No,omitempty"`
	LineNo            int         `json:"line_No,omitempty"`
	Type              string      `json:"type,omitempty"`
	No                string      `json:"no,omitempty"`
	Description       string      `json:"description,omitempty"`
	QuantityPer       json.Number `json:"quantity_per,omitempty"`
	UnitOfMeasureCode string      `json:"unit_of_Measure_Code,omitempty"`
	RoutingLinkCode   *string     `json:"routing_Link_Code,omitempty"`
}

// DocumentAttachmentWrite is the body of a document attachment create
type DocumentAttachmentWrite struct {
	FileName   string    `json:"fileName"`
	ParentType string    `json:"parentType"`
	ParentID   uuid.UUID `json:"parentId"`
	LineNumber int       `json:"lineNumber"`
}

// Code returns a routing link code for write bodies
func Code(s string) *string {
	return &s
}

// Number renders a decimal as a JSON number for write bodies
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
