package handler

import (
	"context"

	apperp "github.com/erp/bcadapter/internal/application/erp"
	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/stretchr/testify/mock"
)

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Query(ctx context.Context, q erp.Query) ([]erp.Item, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]erp.Item), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, item erp.Item) (*erp.WriteResult, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, item erp.Item) (*erp.WriteResult, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, number string) error {
	return m.Called(ctx, number).Error(0)
}

type MockBomHeaderService struct {
	mock.Mock
}

func (m *MockBomHeaderService) Query(ctx context.Context, q erp.Query) ([]erp.BomHeader, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]erp.BomHeader), args.Error(1)
}

func (m *MockBomHeaderService) Create(ctx context.Context, header erp.BomHeader) (*erp.WriteResult, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockBomHeaderService) Update(ctx context.Context, header erp.BomHeader) (*erp.WriteResult, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockBomHeaderService) Delete(ctx context.Context, number string) error {
	return m.Called(ctx, number).Error(0)
}

type MockBomRowService struct {
	mock.Mock
}

func (m *MockBomRowService) Query(ctx context.Context, q erp.Query) ([]erp.BomRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]erp.BomRow), args.Error(1)
}

func (m *MockBomRowService) Create(ctx context.Context, row erp.BomRow) (*erp.WriteResult, error) {
	args := m.Called(ctx, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockBomRowService) Update(ctx context.Context, row erp.BomRow) (*erp.WriteResult, error) {
	args := m.Called(ctx, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockBomRowService) Delete(ctx context.Context, key erp.BomRowKey) error {
	return m.Called(ctx, key).Error(0)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Query(ctx context.Context, q erp.Query) ([]erp.Document, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]erp.Document), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, doc erp.Document) (*erp.WriteResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, doc erp.Document) (*erp.WriteResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*erp.WriteResult), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, doc erp.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentService) Download(ctx context.Context, doc erp.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, doc erp.Document, contentType string, data []byte) error {
	return m.Called(ctx, doc, contentType, data).Error(0)
}

type MockDirectoryChecker struct {
	mock.Mock
}

func (m *MockDirectoryChecker) Check(ctx context.Context) (*apperp.DirectoryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apperp.DirectoryReport), args.Error(1)
}

var (
	_ ItemService      = (*MockItemService)(nil)
	_ BomHeaderService = (*MockBomHeaderService)(nil)
	_ BomRowService    = (*MockBomRowService)(nil)
	_ DocumentService  = (*MockDocumentService)(nil)
	_ DirectoryChecker = (*MockDirectoryChecker)(nil)
)
