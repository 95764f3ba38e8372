// Package erp composes the logical entities exposed to the host from the
// resources of Business Central.
package erp

import (
	"context"

	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/google/uuid"
)

// ItemReader reads the resources an item view is composed from
type ItemReader interface {
	ItemCard(ctx context.Context, number string) (*bc.ItemCard, error)
	ItemCards(ctx context.Context) ([]bc.ItemCard, error)
	ItemPicture(ctx context.Context, number string) ([]byte, error)
	ItemAttributes(ctx context.Context, number string) ([]bc.Attribute, error)
	AllItemAttributes(ctx context.Context) ([]bc.Attribute, error)
	ItemLinks(ctx context.Context, number string) ([]bc.Link, error)
	AllItemLinks(ctx context.Context) ([]bc.Link, error)
	Vendor(ctx context.Context, number string) (*bc.Vendor, error)
	Vendors(ctx context.Context) ([]bc.Vendor, error)
}

// AttributeWriter writes the best-effort secondary attributes of an item
type AttributeWriter interface {
	SetItemAttribute(ctx context.Context, number, name, value string) error
	SetItemLink(ctx context.Context, number, description, url string) error
}

// ItemRemote is what ItemService needs from Business Central
type ItemRemote interface {
	ItemReader
	AttributeWriter
	CreateItemCard(ctx context.Context, card bc.ItemCardWrite) (*bc.ItemCard, error)
	UpdateItemCard(ctx context.Context, card bc.ItemCardWrite) (*bc.ItemCard, error)
	SetItemPicture(ctx context.Context, number string, data []byte) error
}

// BomRemote is what the BOM services need from Business Central
type BomRemote interface {
	ItemReader
	ItemCardMin(ctx context.Context, number string) (*bc.ItemCardMin, error)
	UpdateItemCardProductionBOM(ctx context.Context, number string) (*bc.ItemCard, error)
	BOMHeader(ctx context.Context, number string) (*bc.ProductionBOM, error)
	CreateBOMHeader(ctx context.Context, header bc.ProductionBOMWrite) (*bc.ProductionBOM, error)
	UpdateBOMHeader(ctx context.Context, header bc.ProductionBOMWrite) (*bc.ProductionBOM, error)
	BOMLine(ctx context.Context, parent string, position int, child string) (*bc.ProdBOMLine, error)
	CreateBOMLine(ctx context.Context, line bc.ProdBOMLineWrite) (*bc.ProdBOMLine, error)
	UpdateBOMLine(ctx context.Context, line bc.ProdBOMLineWrite) (*bc.ProdBOMLine, error)
	DeleteBOMLine(ctx context.Context, parent string, position int, child string) error
}

// DocumentRemote is what DocumentService needs from Business Central
type DocumentRemote interface {
	ItemMin(ctx context.Context, number string) (*bc.ItemMin, error)
	ItemDocuments(ctx context.Context, itemID uuid.UUID) ([]bc.DocumentAttachment, error)
	CreateDocumentAttachment(ctx context.Context, itemID uuid.UUID, fileName string, lineNumber int) (*bc.DocumentAttachment, error)
	DownloadDocument(ctx context.Context, doc bc.DocumentAttachment) ([]byte, error)
	UploadDocument(ctx context.Context, doc bc.DocumentAttachment, contentType string, data []byte) error
}

// DirectoryRemote lists the code tables checked at startup
type DirectoryRemote interface {
	Companies(ctx context.Context) ([]bc.Company, error)
	Vendors(ctx context.Context) ([]bc.Vendor, error)
	ItemCategories(ctx context.Context) ([]bc.Lookup, error)
	UnitsOfMeasure(ctx context.Context) ([]bc.Lookup, error)
	InventoryPostingGroups(ctx context.Context) ([]bc.Lookup, error)
	GeneralProductPostingGroups(ctx context.Context) ([]bc.Lookup, error)
	RoutingLinks(ctx context.Context) ([]bc.RoutingLink, error)
	ItemAttributeDefinitions(ctx context.Context) ([]bc.AttributeDefinition, error)
}

// Remote is the complete surface of the Business Central client used here
type Remote interface {
	ItemRemote
	BomRemote
	DocumentRemote
	DirectoryRemote
}

var _ Remote = (*bc.Client)(nil)

// Settings are the configured names and markers entity composition relies on
type Settings struct {
	// Attribute names holding the item description and material
	AttributeDescription string
	AttributeMaterial    string
	// Record link labels of the thin and thick client links
	LinkThinClient  string
	LinkThickClient string

	// PurchaseIndicator is the replenishment system value meaning "buy"
	PurchaseIndicator string
	// RawMaterialMarker is the routing link code flagging raw material rows
	RawMaterialMarker string

	// Concurrency bounds the per-request fan-out of child reads
	Concurrency int
}

// DefaultSettings returns the settings used by the reference Business Central extension
func DefaultSettings() Settings {
	return Settings{
		AttributeDescription: "Description",
		AttributeMaterial:    "Material",
		LinkThinClient:       "Thin Client",
		LinkThickClient:      "Thick Client",
		PurchaseIndicator:    "Purchase",
		RawMaterialMarker:    "RAW",
		Concurrency:          defaultConcurrency,
	}
}

func (s Settings) concurrency() int {
	if s.Concurrency <= 0 {
		return defaultConcurrency
	}
	return s.Concurrency
}
