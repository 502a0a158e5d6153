// Package analysis wires the photo-analysis vertical into the HTTP app.
package analysis

import (
	"renoquote_backend/internal/adapters/storage"
	"renoquote_backend/internal/analysis/handler"
	"renoquote_backend/internal/analysis/repository"
	"renoquote_backend/internal/analysis/service"
	estimation "renoquote_backend/internal/estimation/service"
	"renoquote_backend/internal/events"
	apphttp "renoquote_backend/internal/http"
	quotes "renoquote_backend/internal/quotes/service"
	"renoquote_backend/internal/scheduler"
	"renoquote_backend/platform/config"
	"renoquote_backend/platform/logger"
	"renoquote_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module exposes the photo-analysis workflow over HTTP. The actual photo
// processing runs in the worker binary via the scheduler queue.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates a new analysis module. photoStorage may be nil when
// MinIO is disabled.
func NewModule(
	pool *pgxpool.Pool,
	quotesSvc *quotes.Service,
	consolidator *estimation.Consolidator,
	enqueuer scheduler.AnalysisEnqueuer,
	photoStorage storage.PhotoStorage,
	photoBucket string,
	bus events.Bus,
	log *logger.Logger,
	val *validator.Validator,
	cfg config.AnalysisConfig,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, quotesSvc, consolidator, enqueuer, photoStorage, photoBucket, bus, log, cfg)
	return &Module{
		service: svc,
		handler: handler.New(svc, val),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "analysis"
}

// Service returns the analysis service, used as the worker's job runner.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes. The group uses the same
// ":id" parameter name as the quotes module so gin accepts both.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/quotes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
