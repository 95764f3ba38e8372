package erp

import (
	"context"
	"fmt"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultDocumentContentType is used when an upload does not name its content type
const DefaultDocumentContentType = "application/pdf"

// DocumentService lists, creates, downloads and uploads item attachments
type DocumentService struct {
	remote DocumentRemote
	obs    observer
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(remote DocumentRemote, logger *zap.Logger, metrics *telemetry.RemoteMetrics) *DocumentService {
	return &DocumentService{remote: remote, obs: newObserver(logger, metrics)}
}

// Query lists the attachments of the item bound to Number, optionally
// narrowed to one FileName.
func (s *DocumentService) Query(ctx context.Context, q erp.Query) (docs []erp.Document, err error) {
	ctx, done := s.obs.start(ctx, entityDocument, opQuery, telemetry.WithAttribute(telemetry.SpanAttrQuery, q.String()))
	defer func() { done(err, 0) }()

	number, ok := q.Value(erp.FieldNumber)
	if !ok {
		return nil, q.Only(erp.FieldNumber)
	}
	fileName, byName := q.Value(erp.FieldFileName)
	if byName {
		err = q.Only(erp.FieldNumber, erp.FieldFileName)
	} else {
		err = q.Only(erp.FieldNumber)
	}
	if err != nil {
		return nil, err
	}

	_, attachments, err := s.attachments(ctx, number)
	if err != nil {
		return nil, err
	}

	docs = make([]erp.Document, 0, len(attachments))
	for _, a := range attachments {
		if byName && a.FileName != fileName {
			continue
		}
		docs = append(docs, erp.Document{Number: number, FileName: a.FileName})
	}
	return docs, nil
}

// Create attaches an empty document to the item. An attachment with the
// same file name is reused, so repeated creates report the same RemoteID.
func (s *DocumentService) Create(ctx context.Context, doc erp.Document) (res *erp.WriteResult, err error) {
	ctx, done := s.obs.start(ctx, entityDocument, opCreate, telemetry.WithAttribute(telemetry.SpanAttrNumber, doc.Number))
	defer func() { done(err, 0) }()

	if doc.Number == "" || doc.FileName == "" {
		return nil, fmt.Errorf("%w: number and file name are required", shared.ErrInvalidInput)
	}

	item, attachments, err := s.attachments(ctx, doc.Number)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", shared.ErrNotFound, doc.Number)
	}

	result := &erp.WriteResult{Key: doc.Number + "/" + doc.FileName}
	if existing := findAttachment(attachments, doc.FileName); existing != nil {
		result.RemoteID = existing.ID.String()
		return result, nil
	}
	created, err := s.remote.CreateDocumentAttachment(ctx, item.ID, doc.FileName, len(attachments))
	if err != nil {
		return nil, err
	}
	if created != nil {
		result.RemoteID = created.ID.String()
	}
	return result, nil
}

// Update is not supported; the payload is replaced through Upload
func (s *DocumentService) Update(ctx context.Context, doc erp.Document) (res *erp.WriteResult, err error) {
	_, done := s.obs.start(ctx, entityDocument, opUpdate, telemetry.WithAttribute(telemetry.SpanAttrNumber, doc.Number))
	defer func() { done(err, 0) }()

	return nil, fmt.Errorf("%w: document update", shared.ErrNotSupported)
}

// Delete is not supported
func (s *DocumentService) Delete(ctx context.Context, doc erp.Document) (err error) {
	_, done := s.obs.start(ctx, entityDocument, opDelete, telemetry.WithAttribute(telemetry.SpanAttrNumber, doc.Number))
	defer func() { done(err, 0) }()

	return fmt.Errorf("%w: document delete", shared.ErrNotSupported)
}

// Download returns the payload of the document; nil when the item, the
// attachment or its content does not exist.
func (s *DocumentService) Download(ctx context.Context, doc erp.Document) (data []byte, err error) {
	ctx, done := s.obs.start(ctx, entityDocument, opDownload, telemetry.WithAttribute(telemetry.SpanAttrNumber, doc.Number))
	defer func() { done(err, 0) }()

	_, attachments, err := s.attachments(ctx, doc.Number)
	if err != nil {
		return nil, err
	}
	a := findAttachment(attachments, doc.FileName)
	if a == nil {
		return nil, nil
	}
	return s.remote.DownloadDocument(ctx, *a)
}

// Upload replaces the payload of the document. Nothing happens when the
// item or the attachment does not exist.
func (s *DocumentService) Upload(ctx context.Context, doc erp.Document, contentType string, data []byte) (err error) {
	ctx, done := s.obs.start(ctx, entityDocument, opUpload, telemetry.WithAttribute(telemetry.SpanAttrNumber, doc.Number))
	defer func() { done(err, 0) }()

	_, attachments, err := s.attachments(ctx, doc.Number)
	if err != nil {
		return err
	}
	a := findAttachment(attachments, doc.FileName)
	if a == nil {
		return nil
	}
	if contentType == "" {
		contentType = DefaultDocumentContentType
	}
	return s.remote.UploadDocument(ctx, *a, contentType, data)
}

// attachments resolves the item and lists its attachments; both are empty
// when the item does not exist.
func (s *DocumentService) attachments(ctx context.Context, number string) (*bc.ItemMin, []bc.DocumentAttachment, error) {
	item, err := s.remote.ItemMin(ctx, number)
	if err != nil || item == nil {
		return nil, nil, err
	}
	attachments, err := s.remote.ItemDocuments(ctx, item.ID)
	if err != nil {
		return nil, nil, err
	}
	return item, attachments, nil
}

func findAttachment(attachments []bc.DocumentAttachment, fileName string) *bc.DocumentAttachment {
	for i := range attachments {
		if attachments[i].FileName == fileName {
			return &attachments[i]
		}
	}
	return nil
}
