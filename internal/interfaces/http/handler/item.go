package handler

import (
	"context"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ItemService is the item operations the handler needs
type ItemService interface {
	Query(ctx context.Context, q erp.Query) ([]erp.Item, error)
	Create(ctx context.Context, item erp.Item) (*erp.WriteResult, error)
	Update(ctx context.Context, item erp.Item) (*erp.WriteResult, error)
	Delete(ctx context.Context, number string) error
}

// ItemHandler handles item endpoints
type ItemHandler struct {
	BaseHandler
	service ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List answers GET /items and GET /items?number=
func (h *ItemHandler) List(c *gin.Context) {
	q, err := itemQueryFields.parse(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items, err := h.service.Query(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Create answers POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	res, err := h.service.Create(c.Request.Context(), req.ToItem())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewWriteResponse(res))
}

// Update answers PUT /items/:number; the path names the item
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	req.Number = c.Param("number")
	res, err := h.service.Update(c.Request.Context(), req.ToItem())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewWriteResponse(res))
}

// Delete answers DELETE /items/:number
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("number")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
