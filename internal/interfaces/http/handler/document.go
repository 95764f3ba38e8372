package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DocumentService is the document operations the handler needs
type DocumentService interface {
	Query(ctx context.Context, q erp.Query) ([]erp.Document, error)
	Create(ctx context.Context, doc erp.Document) (*erp.WriteResult, error)
	Update(ctx context.Context, doc erp.Document) (*erp.WriteResult, error)
	Delete(ctx context.Context, doc erp.Document) error
	Download(ctx context.Context, doc erp.Document) ([]byte, error)
	Upload(ctx context.Context, doc erp.Document, contentType string, data []byte) error
}

// DocumentHandler handles item attachment endpoints
type DocumentHandler struct {
	BaseHandler
	service DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List answers GET /documents?number=&file_name=
func (h *DocumentHandler) List(c *gin.Context) {
	q, err := documentQueryFields.parse(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	docs, err := h.service.Query(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// Create answers POST /documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	res, err := h.service.Create(c.Request.Context(), erp.Document{Number: req.Number, FileName: req.FileName})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewWriteResponse(res))
}

// Update answers PUT /documents/:number/:file_name
func (h *DocumentHandler) Update(c *gin.Context) {
	res, err := h.service.Update(c.Request.Context(), documentParam(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewWriteResponse(res))
}

// Delete answers DELETE /documents/:number/:file_name
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), documentParam(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Download answers GET /documents/:number/:file_name/content with the raw
// payload. The content type is guessed from the file name.
func (h *DocumentHandler) Download(c *gin.Context) {
	doc := documentParam(c)
	data, err := h.service.Download(c.Request.Context(), doc)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if data == nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Document not found")
		return
	}

	contentType := mime.TypeByExtension(path.Ext(doc.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	c.Data(http.StatusOK, contentType, data)
}

// Upload answers PUT /documents/:number/:file_name/content with the raw
// payload as body.
func (h *DocumentHandler) Upload(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, err.Error())
		return
	}
	if err := h.service.Upload(c.Request.Context(), documentParam(c), c.ContentType(), data); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func documentParam(c *gin.Context) erp.Document {
	return erp.Document{Number: c.Param("number"), FileName: c.Param("file_name")}
}
