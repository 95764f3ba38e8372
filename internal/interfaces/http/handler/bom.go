package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/erp/bcadapter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BomHeaderService is the BOM header operations the handler needs
type BomHeaderService interface {
	Query(ctx context.Context, q erp.Query) ([]erp.BomHeader, error)
	Create(ctx context.Context, header erp.BomHeader) (*erp.WriteResult, error)
	Update(ctx context.Context, header erp.BomHeader) (*erp.WriteResult, error)
	Delete(ctx context.Context, number string) error
}

// BomRowService is the BOM row operations the handler needs
type BomRowService interface {
	Query(ctx context.Context, q erp.Query) ([]erp.BomRow, error)
	Create(ctx context.Context, row erp.BomRow) (*erp.WriteResult, error)
	Update(ctx context.Context, row erp.BomRow) (*erp.WriteResult, error)
	Delete(ctx context.Context, key erp.BomRowKey) error
}

// BomHandler handles BOM header and BOM row endpoints
type BomHandler struct {
	BaseHandler
	headers BomHeaderService
	rows    BomRowService
}

// NewBomHandler creates a new BomHandler
func NewBomHandler(headers BomHeaderService, rows BomRowService) *BomHandler {
	return &BomHandler{headers: headers, rows: rows}
}

// ListHeaders answers GET /bom-headers?number=
func (h *BomHandler) ListHeaders(c *gin.Context) {
	q, err := bomHeaderQueryFields.parse(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	headers, err := h.headers.Query(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, headers)
}

// CreateHeader answers POST /bom-headers
func (h *BomHandler) CreateHeader(c *gin.Context) {
	var req dto.BomHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	res, err := h.headers.Create(c.Request.Context(), erp.BomHeader{Number: req.Number})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewWriteResponse(res))
}

// UpdateHeader answers PUT /bom-headers/:number. The header takes its
// description and unit from the item card, so no body is read.
func (h *BomHandler) UpdateHeader(c *gin.Context) {
	res, err := h.headers.Update(c.Request.Context(), erp.BomHeader{Number: c.Param("number")})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewWriteResponse(res))
}

// DeleteHeader answers DELETE /bom-headers/:number
func (h *BomHandler) DeleteHeader(c *gin.Context) {
	if err := h.headers.Delete(c.Request.Context(), c.Param("number")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListRows answers GET /bom-rows?parent_number=&position=&child_number=
func (h *BomHandler) ListRows(c *gin.Context) {
	q, err := bomRowQueryFields.parse(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rows, err := h.rows.Query(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CreateRow answers POST /bom-rows
func (h *BomHandler) CreateRow(c *gin.Context) {
	var req dto.BomRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	res, err := h.rows.Create(c.Request.Context(), req.ToBomRow())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewWriteResponse(res))
}

// UpdateRow answers PUT /bom-rows/:parent/:position/:child; the path is the key
func (h *BomHandler) UpdateRow(c *gin.Context) {
	key, err := rowKeyParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req dto.BomRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	row := req.ToBomRow()
	row.ParentNumber, row.Position, row.ChildNumber = key.ParentNumber, key.Position, key.ChildNumber

	res, err := h.rows.Update(c.Request.Context(), row)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewWriteResponse(res))
}

// DeleteRow answers DELETE /bom-rows/:parent/:position/:child
func (h *BomHandler) DeleteRow(c *gin.Context) {
	key, err := rowKeyParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.rows.Delete(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func rowKeyParam(c *gin.Context) (erp.BomRowKey, error) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		return erp.BomRowKey{}, fmt.Errorf("%w: position must be an integer, got %q", shared.ErrInvalidInput, c.Param("position"))
	}
	return erp.BomRowKey{
		ParentNumber: c.Param("parent"),
		Position:     position,
		ChildNumber:  c.Param("child"),
	}, nil
}
