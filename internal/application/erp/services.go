package erp

import (
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Services bundles the entity services sharing one remote client
type Services struct {
	Items      *ItemService
	BomHeaders *BomHeaderService
	BomRows    *BomRowService
	Documents  *DocumentService
}

// NewServices wires every entity service to remote
func NewServices(remote Remote, settings Settings, logger *zap.Logger, metrics *telemetry.RemoteMetrics) *Services {
	return &Services{
		Items:      NewItemService(remote, settings, logger, metrics),
		BomHeaders: NewBomHeaderService(remote, settings, logger, metrics),
		BomRows:    NewBomRowService(remote, settings, logger, metrics),
		Documents:  NewDocumentService(remote, logger, metrics),
	}
}
