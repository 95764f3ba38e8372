package dto

import (
	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/shopspring/decimal"
)

// ItemRequest is the body of an item create or update
type ItemRequest struct {
	Number          string          `json:"number"`
	Title           string          `json:"title" binding:"max=100"`
	Description     string          `json:"description"`
	UnitOfMeasure   string          `json:"unit_of_measure" binding:"max=10"`
	Weight          decimal.Decimal `json:"weight"`
	Material        string          `json:"material"`
	Thumbnail       []byte          `json:"thumbnail"`
	ThinClientLink  string          `json:"thin_client_link" binding:"omitempty,url"`
	ThickClientLink string          `json:"thick_client_link"`
}

// ToItem converts the request to the domain entity
func (r ItemRequest) ToItem() erp.Item {
	return erp.Item{
		Number:          r.Number,
		Title:           r.Title,
		Description:     r.Description,
		UnitOfMeasure:   r.UnitOfMeasure,
		Weight:          r.Weight,
		Material:        r.Material,
		Thumbnail:       r.Thumbnail,
		ThinClientLink:  r.ThinClientLink,
		ThickClientLink: r.ThickClientLink,
	}
}

// BomHeaderRequest is the body of a BOM header create
type BomHeaderRequest struct {
	Number string `json:"number" binding:"required"`
}

// BomRowRequest is the body of a BOM row create or update
type BomRowRequest struct {
	ParentNumber  string          `json:"parent_number"`
	ChildNumber   string          `json:"child_number"`
	Position      int             `json:"position"`
	Quantity      decimal.Decimal `json:"quantity"`
	IsRawMaterial bool            `json:"is_raw_material"`
}

// ToBomRow converts the request to the domain entity
func (r BomRowRequest) ToBomRow() erp.BomRow {
	return erp.BomRow{
		ParentNumber:  r.ParentNumber,
		ChildNumber:   r.ChildNumber,
		Position:      r.Position,
		Quantity:      r.Quantity,
		IsRawMaterial: r.IsRawMaterial,
	}
}

// DocumentRequest is the body of a document create
type DocumentRequest struct {
	Number   string `json:"number" binding:"required"`
	FileName string `json:"file_name" binding:"required,max=250"`
}

// WriteResponse reports the key of a written entity and the best-effort
// steps that failed
type WriteResponse struct {
	Key      string   `json:"key"`
	RemoteID string   `json:"remote_id,omitempty"`
	Warnings []string `json:"warnings"`
}

// NewWriteResponse converts a write result; warnings are never null
func NewWriteResponse(res *erp.WriteResult) WriteResponse {
	w := WriteResponse{Warnings: []string{}}
	if res != nil {
		w.Key = res.Key
		w.RemoteID = res.RemoteID
		if len(res.Warnings) > 0 {
			w.Warnings = res.Warnings
		}
	}
	return w
}
