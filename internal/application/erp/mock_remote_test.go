package erp

import (
	"context"

	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRemote is a mock implementation of Remote
type MockRemote struct {
	mock.Mock
}

var _ Remote = (*MockRemote)(nil)

func (m *MockRemote) ItemCard(ctx context.Context, number string) (*bc.ItemCard, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ItemCard), args.Error(1)
}

func (m *MockRemote) ItemCards(ctx context.Context) ([]bc.ItemCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.ItemCard), args.Error(1)
}

func (m *MockRemote) ItemCardMin(ctx context.Context, number string) (*bc.ItemCardMin, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ItemCardMin), args.Error(1)
}

func (m *MockRemote) CreateItemCard(ctx context.Context, card bc.ItemCardWrite) (*bc.ItemCard, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ItemCard), args.Error(1)
}

func (m *MockRemote) UpdateItemCard(ctx context.Context, card bc.ItemCardWrite) (*bc.ItemCard, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ItemCard), args.Error(1)
}

func (m *MockRemote) UpdateItemCardProductionBOM(ctx context.Context, number string) (*bc.ItemCard, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ItemCard), args.Error(1)
}

func (m *MockRemote) ItemPicture(ctx context.Context, number string) ([]byte, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRemote) SetItemPicture(ctx context.Context, number string, data []byte) error {
	args := m.Called(ctx, number, data)
	return args.Error(0)
}

func (m *MockRemote) ItemAttributes(ctx context.Context, number string) ([]bc.Attribute, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Attribute), args.Error(1)
}

func (m *MockRemote) AllItemAttributes(ctx context.Context) ([]bc.Attribute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Attribute), args.Error(1)
}

func (m *MockRemote) SetItemAttribute(ctx context.Context, number, name, value string) error {
	args := m.Called(ctx, number, name, value)
	return args.Error(0)
}

func (m *MockRemote) ItemLinks(ctx context.Context, number string) ([]bc.Link, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Link), args.Error(1)
}

func (m *MockRemote) AllItemLinks(ctx context.Context) ([]bc.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Link), args.Error(1)
}

func (m *MockRemote) SetItemLink(ctx context.Context, number, description, url string) error {
	args := m.Called(ctx, number, description, url)
	return args.Error(0)
}

func (m *MockRemote) Vendor(ctx context.Context, number string) (*bc.Vendor, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.Vendor), args.Error(1)
}

func (m *MockRemote) Vendors(ctx context.Context) ([]bc.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Vendor), args.Error(1)
}

func (m *MockRemote) BOMHeader(ctx context.Context, number string) (*bc.ProductionBOM, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ProductionBOM), args.Error(1)
}

func (m *MockRemote) CreateBOMHeader(ctx context.Context, header bc.ProductionBOMWrite) (*bc.ProductionBOM, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ProductionBOM), args.Error(1)
}

func (m *MockRemote) UpdateBOMHeader(ctx context.Context, header bc.ProductionBOMWrite) (*bc.ProductionBOM, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ProductionBOM), args.Error(1)
}

func (m *MockRemote) BOMLine(ctx context.Context, parent string, position int, child string) (*bc.ProdBOMLine, error) {
	args := m.Called(ctx, parent, position, child)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ProdBOMLine), args.Error(1)
}

func (m *MockRemote) CreateBOMLine(ctx context.Context, line bc.ProdBOMLineWrite) (*bc.ProdBOMLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ProdBOMLine), args.Error(1)
}

func (m *MockRemote) UpdateBOMLine(ctx context.Context, line bc.ProdBOMLineWrite) (*bc.ProdBOMLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ProdBOMLine), args.Error(1)
}

func (m *MockRemote) DeleteBOMLine(ctx context.Context, parent string, position int, child string) error {
	args := m.Called(ctx, parent, position, child)
	return args.Error(0)
}

func (m *MockRemote) ItemMin(ctx context.Context, number string) (*bc.ItemMin, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.ItemMin), args.Error(1)
}

func (m *MockRemote) ItemDocuments(ctx context.Context, itemID uuid.UUID) ([]bc.DocumentAttachment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.DocumentAttachment), args.Error(1)
}

func (m *MockRemote) CreateDocumentAttachment(ctx context.Context, itemID uuid.UUID, fileName string, lineNumber int) (*bc.DocumentAttachment, error) {
	args := m.Called(ctx, itemID, fileName, lineNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bc.DocumentAttachment), args.Error(1)
}

func (m *MockRemote) DownloadDocument(ctx context.Context, doc bc.DocumentAttachment) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRemote) UploadDocument(ctx context.Context, doc bc.DocumentAttachment, contentType string, data []byte) error {
	args := m.Called(ctx, doc, contentType, data)
	return args.Error(0)
}

func (m *MockRemote) Companies(ctx context.Context) ([]bc.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Company), args.Error(1)
}

func (m *MockRemote) ItemCategories(ctx context.Context) ([]bc.Lookup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Lookup), args.Error(1)
}

func (m *MockRemote) UnitsOfMeasure(ctx context.Context) ([]bc.Lookup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Lookup), args.Error(1)
}

func (m *MockRemote) InventoryPostingGroups(ctx context.Context) ([]bc.Lookup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Lookup), args.Error(1)
}

func (m *MockRemote) GeneralProductPostingGroups(ctx context.Context) ([]bc.Lookup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.Lookup), args.Error(1)
}

func (m *MockRemote) RoutingLinks(ctx context.Context) ([]bc.RoutingLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.RoutingLink), args.Error(1)
}

func (m *MockRemote) ItemAttributeDefinitions(ctx context.Context) ([]bc.AttributeDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bc.AttributeDefinition), args.Error(1)
}
