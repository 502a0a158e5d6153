// Package notification sends emails in response to domain events.
// Domain modules publish events and never talk to email providers directly;
// this module subscribes and inverts the dependency.
package notification

import (
	"context"
	"fmt"

	"renoquote_backend/internal/email"
	"renoquote_backend/internal/events"
	apphttp "renoquote_backend/internal/http"
	quotes "renoquote_backend/internal/quotes/service"
	"renoquote_backend/platform/logger"

	"github.com/google/uuid"
)

// QuoteReader resolves quote headers for events that don't carry the
// contact email themselves.
type QuoteReader interface {
	Summary(ctx context.Context, quoteID uuid.UUID) (quotes.QuoteSummary, error)
}

// Config provides the settings the notification module needs.
type Config interface {
	GetAppBaseURL() string
}

// Module subscribes to domain events and sends the matching emails.
type Module struct {
	sender     email.Sender
	quotes     QuoteReader
	log        *logger.Logger
	appBaseURL string
}

// NewModule creates the notification module and registers its event
// handlers on the bus.
func NewModule(bus events.Bus, sender email.Sender, quotesReader QuoteReader, log *logger.Logger, cfg Config) *Module {
	m := &Module{
		sender:     sender,
		quotes:     quotesReader,
		log:        log,
		appBaseURL: cfg.GetAppBaseURL(),
	}

	bus.Subscribe(events.QuoteStatusChanged{}.EventName(), events.HandlerFunc(m.handleQuoteStatusChanged))
	bus.Subscribe(events.AnalysisCompleted{}.EventName(), events.HandlerFunc(m.handleAnalysisCompleted))

	return m
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes is a no-op: the module is event-driven and exposes no
// HTTP endpoints.
func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

func (m *Module) quoteURL(quoteID uuid.UUID) string {
	return fmt.Sprintf("%s/quotes/%s", m.appBaseURL, quoteID)
}

func (m *Module) handleQuoteStatusChanged(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.QuoteStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if evt.OwnerEmail == "" {
		return nil
	}

	switch evt.ToStatus {
	case "approved":
		if err := m.sender.SendQuoteApprovedEmail(ctx, evt.OwnerEmail, evt.Title, evt.TotalAmount, m.quoteURL(evt.QuoteID)); err != nil {
			m.log.Error("failed to send quote approved email", "quote_id", evt.QuoteID, "error", err)
			return err
		}
	case "rejected":
		if err := m.sender.SendQuoteRejectedEmail(ctx, evt.OwnerEmail, evt.Title, m.quoteURL(evt.QuoteID)); err != nil {
			m.log.Error("failed to send quote rejected email", "quote_id", evt.QuoteID, "error", err)
			return err
		}
	}
	return nil
}

func (m *Module) handleAnalysisCompleted(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.AnalysisCompleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	summary, err := m.quotes.Summary(ctx, evt.QuoteID)
	if err != nil {
		m.log.Error("failed to load quote for analysis notification", "quote_id", evt.QuoteID, "error", err)
		return err
	}
	if summary.ContactEmail == nil || *summary.ContactEmail == "" {
		return nil
	}

	if err := m.sender.SendAnalysisCompletedEmail(ctx, *summary.ContactEmail, summary.Title, evt.WorkCategories, m.quoteURL(evt.QuoteID)); err != nil {
		m.log.Error("failed to send analysis completed email", "quote_id", evt.QuoteID, "error", err)
		return err
	}
	return nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
