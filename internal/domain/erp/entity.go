// Package erp defines the logical entities the adapter exposes to its host.
// Each entity is a transient view assembled per request from one or more
// Business Central resources; none of them is persisted locally.
package erp

import (
	"github.com/shopspring/decimal"
)

// Item is the simple entity composed from an item card, its attributes and its record links.
type Item struct {
	Number        string          `json:"number"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Weight        decimal.Decimal `json:"weight"`
	Material      string          `json:"material,omitempty"`

	// Read only, taken from the item card.
	Price    decimal.Decimal `json:"price"`
	Stock    decimal.Decimal `json:"stock"`
	MakeBuy  bool            `json:"make_buy"`
	Blocked  bool            `json:"blocked"`
	Supplier string          `json:"supplier,omitempty"`

	Thumbnail       []byte `json:"thumbnail,omitempty"`
	ThinClientLink  string `json:"thin_client_link,omitempty"`
	ThickClientLink string `json:"thick_client_link,omitempty"`
}

// BomHeader is the composite entity: a production BOM and its ordered rows.
type BomHeader struct {
	Number   string   `json:"number"`
	Item     *Item    `json:"item,omitempty"`
	Children []BomRow `json:"children"`
}

// BomRow is a production BOM line addressed by (ParentNumber, Position, ChildNumber).
type BomRow struct {
	ParentNumber  string          `json:"parent_number"`
	ChildNumber   string          `json:"child_number"`
	Position      int             `json:"position"`
	Quantity      decimal.Decimal `json:"quantity"`
	IsRawMaterial bool            `json:"is_raw_material"`
	Item          *Item           `json:"item,omitempty"`
}

// Key returns the identity of the row
func (r BomRow) Key() BomRowKey {
	return BomRowKey{ParentNumber: r.ParentNumber, Position: r.Position, ChildNumber: r.ChildNumber}
}

// BomRowKey is the composite key of a BOM row
type BomRowKey struct {
	ParentNumber string
	Position     int
	ChildNumber  string
}

// Document is an attachment of an item; the payload travels separately.
type Document struct {
	Number   string `json:"number"`
	FileName string `json:"file_name"`
}

// WriteResult reports the canonical key of a written entity and the
// best-effort steps that failed without failing the write. RemoteID is the
// Business Central record id when the entity has one of its own.
type WriteResult struct {
	Key      string   `json:"key"`
	RemoteID string   `json:"remote_id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
