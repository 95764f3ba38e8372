package erp

import (
	"context"
	"testing"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var itemID = uuid.MustParse("5d115c9c-44e3-ea11-bb43-000d3a2feca1")

func withAttachments(remote *MockRemote, attachments ...bc.DocumentAttachment) {
	remote.On("ItemMin", mock.Anything, "1000").Return(&bc.ItemMin{ID: itemID, Number: "1000"}, nil)
	remote.On("ItemDocuments", mock.Anything, itemID).Return(attachments, nil)
}

func TestDocumentService_Query(t *testing.T) {
	ctx := context.Background()
	drawing := bc.DocumentAttachment{ID: uuid.New(), FileName: "drawing.pdf"}
	manual := bc.DocumentAttachment{ID: uuid.New(), FileName: "manual.pdf"}

	t.Run("lists every attachment of the item", func(t *testing.T) {
		remote := new(MockRemote)
		withAttachments(remote, drawing, manual)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		docs, err := svc.Query(ctx, erp.Where(erp.FieldNumber, "1000"))
		require.NoError(t, err)
		assert.Equal(t, []erp.Document{
			{Number: "1000", FileName: "drawing.pdf"},
			{Number: "1000", FileName: "manual.pdf"},
		}, docs)
	})

	t.Run("narrowed to one file name", func(t *testing.T) {
		remote := new(MockRemote)
		withAttachments(remote, drawing, manual)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		docs, err := svc.Query(ctx, erp.Where(erp.FieldNumber, "1000", erp.FieldFileName, "manual.pdf"))
		require.NoError(t, err)
		assert.Equal(t, []erp.Document{{Number: "1000", FileName: "manual.pdf"}}, docs)
	})

	t.Run("absent item gives an empty result", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("ItemMin", mock.Anything, "404").Return(nil, nil)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		docs, err := svc.Query(ctx, erp.Where(erp.FieldNumber, "404"))
		require.NoError(t, err)
		assert.Empty(t, docs)
		remote.AssertNotCalled(t, "ItemDocuments", mock.Anything, mock.Anything)
	})

	t.Run("number is required", func(t *testing.T) {
		svc := NewDocumentService(new(MockRemote), zap.NewNop(), nil)
		_, err := svc.Query(ctx, erp.Where(erp.FieldFileName, "manual.pdf"))
		assert.ErrorIs(t, err, shared.ErrNotSupported)
	})
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	doc := erp.Document{Number: "1000", FileName: "manual.pdf"}

	t.Run("creates the attachment after the existing ones", func(t *testing.T) {
		remote := new(MockRemote)
		withAttachments(remote, bc.DocumentAttachment{FileName: "drawing.pdf"})
		created := bc.DocumentAttachment{ID: uuid.New(), FileName: "manual.pdf"}
		remote.On("CreateDocumentAttachment", mock.Anything, itemID, "manual.pdf", 1).Return(&created, nil)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		res, err := svc.Create(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "1000/manual.pdf", res.Key)
		assert.Equal(t, created.ID.String(), res.RemoteID)
		remote.AssertExpectations(t)
	})

	t.Run("existing file name is reused", func(t *testing.T) {
		remote := new(MockRemote)
		existing := bc.DocumentAttachment{ID: uuid.New(), FileName: "manual.pdf"}
		withAttachments(remote, existing)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		res, err := svc.Create(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "1000/manual.pdf", res.Key)
		assert.Equal(t, existing.ID.String(), res.RemoteID)
		remote.AssertNotCalled(t, "CreateDocumentAttachment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second create returns the attachment of the first", func(t *testing.T) {
		created := bc.DocumentAttachment{ID: uuid.New(), FileName: "manual.pdf"}
		remote := new(MockRemote)
		remote.On("ItemMin", mock.Anything, "1000").Return(&bc.ItemMin{ID: itemID, Number: "1000"}, nil)
		remote.On("ItemDocuments", mock.Anything, itemID).Return([]bc.DocumentAttachment{}, nil).Once()
		remote.On("ItemDocuments", mock.Anything, itemID).Return([]bc.DocumentAttachment{created}, nil).Once()
		remote.On("CreateDocumentAttachment", mock.Anything, itemID, "manual.pdf", 0).Return(&created, nil).Once()

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		first, err := svc.Create(ctx, doc)
		require.NoError(t, err)
		second, err := svc.Create(ctx, doc)
		require.NoError(t, err)

		assert.Equal(t, created.ID.String(), first.RemoteID)
		assert.Equal(t, first.RemoteID, second.RemoteID)
		assert.Equal(t, first.Key, second.Key)
		remote.AssertNumberOfCalls(t, "CreateDocumentAttachment", 1)
		remote.AssertExpectations(t)
	})

	t.Run("unknown item", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("ItemMin", mock.Anything, "1000").Return(nil, nil)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		_, err := svc.Create(ctx, doc)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("file name is required", func(t *testing.T) {
		svc := NewDocumentService(new(MockRemote), zap.NewNop(), nil)
		_, err := svc.Create(ctx, erp.Document{Number: "1000"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestDocumentService_Content(t *testing.T) {
	ctx := context.Background()
	manual := bc.DocumentAttachment{ID: uuid.New(), FileName: "manual.pdf", MediaReadLink: "https://bc/media"}
	doc := erp.Document{Number: "1000", FileName: "manual.pdf"}

	t.Run("download returns the payload", func(t *testing.T) {
		remote := new(MockRemote)
		withAttachments(remote, manual)
		remote.On("DownloadDocument", mock.Anything, manual).Return([]byte("%PDF-1.7"), nil)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		data, err := svc.Download(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.7"), data)
	})

	t.Run("download of an absent attachment is empty", func(t *testing.T) {
		remote := new(MockRemote)
		withAttachments(remote)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		data, err := svc.Download(ctx, doc)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("upload defaults the content type", func(t *testing.T) {
		remote := new(MockRemote)
		withAttachments(remote, manual)
		remote.On("UploadDocument", mock.Anything, manual, DefaultDocumentContentType, []byte("%PDF-1.7")).Return(nil)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		require.NoError(t, svc.Upload(ctx, doc, "", []byte("%PDF-1.7")))
		remote.AssertExpectations(t)
	})

	t.Run("upload to an absent attachment does nothing", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("ItemMin", mock.Anything, "1000").Return(nil, nil)

		svc := NewDocumentService(remote, zap.NewNop(), nil)
		require.NoError(t, svc.Upload(ctx, doc, "image/png", []byte{1}))
		remote.AssertNotCalled(t, "UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("update and delete are not supported", func(t *testing.T) {
		svc := NewDocumentService(new(MockRemote), zap.NewNop(), nil)
		_, err := svc.Update(ctx, doc)
		assert.ErrorIs(t, err, shared.ErrNotSupported)
		assert.ErrorIs(t, svc.Delete(ctx, doc), shared.ErrNotSupported)
	})
}
