package businesscentral

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const documentParentTypeItem = "Item"

// ItemDocuments lists the document attachments of an item by its APIV2 id
func (c *Client) ItemDocuments(ctx context.Context, itemID uuid.UUID) ([]DocumentAttachment, error) {
	path := c.company().Entity("Items", GUIDKey(itemID)).Collection("ItemsdocumentAttachments")
	return list[DocumentAttachment](ctx, c, path)
}

// CreateDocumentAttachment registers a new attachment on an item
func (c *Client) CreateDocumentAttachment(ctx context.Context, itemID uuid.UUID, fileName string, lineNumber int) (*DocumentAttachment, error) {
	body := DocumentAttachmentWrite{
		FileName:   fileName,
		ParentType: documentParentTypeItem,
		ParentID:   itemID,
		LineNumber: lineNumber,
	}
	return send[DocumentAttachment](ctx, c, http.MethodPost, c.company().Collection("DocumentAttachments"), "", body)
}

// DownloadDocument fetches the payload of an attachment; nil when it has none
func (c *Client) DownloadDocument(ctx context.Context, doc DocumentAttachment) ([]byte, error) {
	if doc.MediaReadLink == "" {
		return nil, nil
	}
	data, err := c.download(ctx, doc.MediaReadLink)
	if IsNotFound(err) {
		return nil, nil
	}
	return data, err
}

// UploadDocument replaces the payload of an attachment under its concurrency tag
func (c *Client) UploadDocument(ctx context.Context, doc DocumentAttachment, contentType string, data []byte) error {
	if err := requireTag("document "+doc.FileName, doc.ETag, true); err != nil {
		return err
	}
	path := c.company().Entity("DocumentAttachments", GUIDKey(doc.ID)).Collection("attachmentContent")
	return c.upload(ctx, path, doc.ETag, contentType, data)
}
