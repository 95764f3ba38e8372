package handler

import (
	"github.com/erp/bcadapter/internal/interfaces/http/router"
)

// ItemRoutes creates the route group for item endpoints
func ItemRoutes(h *ItemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("items", "/items")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.PUT("/:number", h.Update)
	group.DELETE("/:number", h.Delete)
	return group
}

// BomRoutes creates the route groups for BOM headers and BOM rows
func BomRoutes(h *BomHandler) []router.RouteRegistrar {
	headers := router.NewDomainGroup("bom-headers", "/bom-headers")
	headers.GET("", h.ListHeaders)
	headers.POST("", h.CreateHeader)
	headers.PUT("/:number", h.UpdateHeader)
	headers.DELETE("/:number", h.DeleteHeader)

	rows := router.NewDomainGroup("bom-rows", "/bom-rows")
	rows.GET("", h.ListRows)
	rows.POST("", h.CreateRow)
	rows.PUT("/:parent/:position/:child", h.UpdateRow)
	rows.DELETE("/:parent/:position/:child", h.DeleteRow)

	return []router.RouteRegistrar{headers, rows}
}

// DocumentRoutes creates the route group for item attachments
func DocumentRoutes(h *DocumentHandler) *router.DomainGroup {
	group := router.NewDomainGroup("documents", "/documents")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.PUT("/:number/:file_name", h.Update)
	group.DELETE("/:number/:file_name", h.Delete)

	// Payload
	group.GET("/:number/:file_name/content", h.Download)
	group.PUT("/:number/:file_name/content", h.Upload)
	return group
}

// SystemRoutes creates the route group for diagnostics under the API prefix
func SystemRoutes(h *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "")
	group.GET("/directory", h.Directory)
	return group
}
