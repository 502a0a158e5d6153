// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"renoquote_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Quotes Domain Events
// =============================================================================

// QuoteCreated is published when a new quote is created.
type QuoteCreated struct {
	BaseEvent
	QuoteID uuid.UUID `json:"quoteId"`
	OwnerID uuid.UUID `json:"ownerId"`
	Title   string    `json:"title"`
}

func (e QuoteCreated) EventName() string { return "quotes.quote.created" }

// QuoteStatusChanged is published when a quote transitions between statuses.
// The notification module listens for approved/rejected transitions.
type QuoteStatusChanged struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	OwnerEmail  string    `json:"ownerEmail,omitempty"`
	Title       string    `json:"title"`
	FromStatus  string    `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	TotalAmount float64   `json:"totalAmount"`
}

func (e QuoteStatusChanged) EventName() string { return "quotes.quote.status_changed" }

// =============================================================================
// Analysis Domain Events
// =============================================================================

// AnalysisCompleted is published when a photo-analysis job has finished and
// the quote has been populated from the consolidated estimate.
type AnalysisCompleted struct {
	BaseEvent
	JobID          uuid.UUID `json:"jobId"`
	QuoteID        uuid.UUID `json:"quoteId"`
	WorkCategories []string  `json:"workCategories"`
	TotalEstimate  float64   `json:"totalEstimate"`
}

func (e AnalysisCompleted) EventName() string { return "analysis.job.completed" }

// AnalysisFailed is published when a photo-analysis job fails outright.
type AnalysisFailed struct {
	BaseEvent
	JobID   uuid.UUID `json:"jobId"`
	QuoteID uuid.UUID `json:"quoteId"`
	Reason  string    `json:"reason"`
}

func (e AnalysisFailed) EventName() string { return "analysis.job.failed" }
