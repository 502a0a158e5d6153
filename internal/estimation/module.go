// Package estimation wires the estimator, detector and consolidator into
// an HTTP module.
package estimation

import (
	"renoquote_backend/internal/estimation/handler"
	"renoquote_backend/internal/estimation/service"
	apphttp "renoquote_backend/internal/http"
	"renoquote_backend/internal/pricing"
	"renoquote_backend/platform/logger"
	"renoquote_backend/platform/validator"
)

// Module exposes estimate computation over HTTP.
type Module struct {
	estimator    *service.Estimator
	consolidator *service.Consolidator
	handler      *handler.Handler
}

// NewModule creates a new estimation module.
func NewModule(cat *pricing.Catalog, log *logger.Logger, val *validator.Validator) *Module {
	est := service.NewEstimator(cat)
	con := service.NewConsolidator(est, log)
	return &Module{
		estimator:    est,
		consolidator: con,
		handler:      handler.New(est, con, val),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "estimation"
}

// Estimator returns the estimator for injection into other modules.
func (m *Module) Estimator() *service.Estimator {
	return m.estimator
}

// Consolidator returns the consolidator for injection into other modules.
func (m *Module) Consolidator() *service.Consolidator {
	return m.consolidator
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/estimates"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
