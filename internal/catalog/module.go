package catalog

import (
	"renoquote_backend/internal/catalog/handler"
	apphttp "renoquote_backend/internal/http"
	"renoquote_backend/internal/pricing"
)

// Module exposes the catalog reference data over HTTP.
type Module struct {
	catalog *pricing.Catalog
	handler *handler.Handler
}

// NewModule creates a new catalog module around an already-built catalog.
func NewModule(cat *pricing.Catalog) *Module {
	return &Module{
		catalog: cat,
		handler: handler.New(cat),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// Catalog returns the underlying catalog for injection into other modules.
func (m *Module) Catalog() *pricing.Catalog {
	return m.catalog
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/catalog"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
