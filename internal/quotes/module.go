// Package quotes wires the quote aggregator vertical into the HTTP app.
package quotes

import (
	"renoquote_backend/internal/events"
	apphttp "renoquote_backend/internal/http"
	"renoquote_backend/internal/quotes/handler"
	"renoquote_backend/internal/quotes/repository"
	"renoquote_backend/internal/quotes/service"
	"renoquote_backend/platform/logger"
	"renoquote_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module exposes the quote aggregator over HTTP.
type Module struct {
	service       *service.Service
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
}

// NewModule creates a new quotes module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, val *validator.Validator, appBaseURL string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	return &Module{
		service:       svc,
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc, appBaseURL),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the quotes service for injection into other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/quotes"))
	m.publicHandler.RegisterRoutes(ctx.V1.Group("/public"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
