// Package service implements the quote aggregator: quote lifecycle,
// sub-quote and material mutations, and the totals roll-up that keeps the
// quote tree consistent after every edit.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"renoquote_backend/internal/events"
	"renoquote_backend/internal/quotes/domain"
	"renoquote_backend/internal/quotes/repository"
	"renoquote_backend/internal/quotes/transport"
	"renoquote_backend/platform/apperr"
	"renoquote_backend/platform/logger"
	"renoquote_backend/platform/phone"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Service provides business logic for quotes.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new quotes service.
func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateQuote creates an empty draft quote for the owner.
func (s *Service) CreateQuote(ctx context.Context, ownerID uuid.UUID, req transport.CreateQuoteRequest) (*transport.QuoteResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	contactPhone := req.ContactPhone
	if contactPhone != nil && *contactPhone != "" {
		normalized := phone.NormalizeE164(*contactPhone)
		contactPhone = &normalized
	}

	token, err := newShareToken()
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	now := time.Now()
	quote := repository.Quote{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        req.Title,
		Status:       string(domain.StatusDraft),
		RoomType:     req.RoomType,
		SurfaceArea:  req.SurfaceArea,
		ContactEmail: req.ContactEmail,
		ContactPhone: contactPhone,
		ShareToken:   token,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateQuote(ctx, &quote); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.QuoteCreated{
		BaseEvent: events.NewBaseEvent(),
		QuoteID:   quote.ID,
		OwnerID:   ownerID,
		Title:     quote.Title,
	})

	resp := transport.QuoteFromModel(quote, nil)
	return &resp, nil
}

// GetQuote returns a quote with its full sub-quote and material tree.
func (s *Service) GetQuote(ctx context.Context, quoteID, ownerID uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetQuote(ctx, quoteID, ownerID)
	if err != nil {
		return nil, err
	}
	subQuotes, err := s.loadTree(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	resp := transport.QuoteFromModel(*quote, subQuotes)
	return &resp, nil
}

func (s *Service) loadTree(ctx context.Context, quoteID uuid.UUID) ([]transport.SubQuoteResponse, error) {
	subQuotes, err := s.repo.ListSubQuotes(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.SubQuoteResponse, 0, len(subQuotes))
	for _, sq := range subQuotes {
		materials, err := s.repo.ListMaterials(ctx, sq.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, transport.SubQuoteFromModel(sq, materials))
	}
	return out, nil
}

// ListQuotes returns the owner's quotes, paginated.
func (s *Service) ListQuotes(ctx context.Context, ownerID uuid.UUID, query transport.ListQuotesQuery) (*transport.QuoteListResponse, error) {
	params := repository.ListParams{
		OwnerID:   ownerID,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	if query.Status != "" {
		if !domain.IsValid(domain.Status(query.Status)) {
			return nil, apperr.Validation("unknown status filter")
		}
		params.Status = &query.Status
	}

	result, err := s.repo.ListQuotes(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.QuoteResponse, len(result.Items))
	for i, q := range result.Items {
		items[i] = transport.QuoteFromModel(q, nil)
	}
	return &transport.QuoteListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// DeleteQuote removes a quote and, via cascade, its sub-quotes and materials.
func (s *Service) DeleteQuote(ctx context.Context, quoteID, ownerID uuid.UUID) error {
	return s.repo.DeleteQuote(ctx, quoteID, ownerID)
}

// UpdateStatus transitions a quote through its state machine and publishes
// the transition on the event bus.
func (s *Service) UpdateStatus(ctx context.Context, quoteID, ownerID uuid.UUID, req transport.UpdateStatusRequest) (*transport.QuoteResponse, error) {
	to := domain.Status(req.Status)
	if !domain.IsValid(to) {
		return nil, apperr.Validation("unknown status")
	}
	return s.transition(ctx, quoteID, &ownerID, to)
}

// TransitionStatus is UpdateStatus without ownership scoping, for the
// analysis workflow moving quotes in and out of analyzing.
func (s *Service) TransitionStatus(ctx context.Context, quoteID uuid.UUID, to domain.Status) error {
	_, err := s.transition(ctx, quoteID, nil, to)
	return err
}

func (s *Service) transition(ctx context.Context, quoteID uuid.UUID, ownerID *uuid.UUID, to domain.Status) (*transport.QuoteResponse, error) {
	var updated *repository.Quote
	var from domain.Status
	err := s.repo.WithQuoteLock(ctx, quoteID, ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		from = domain.Status(quote.Status)
		if !domain.CanTransition(from, to) {
			return apperr.InvalidState(fmt.Sprintf("cannot transition quote from %s to %s", from, to))
		}
		if err := s.repo.UpdateQuoteStatus(ctx, tx, quoteID, string(to)); err != nil {
			return err
		}
		q := *quote
		q.Status = string(to)
		updated = &q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.QuoteStatusChanged(quoteID.String(), string(from), string(to))
	s.publishStatusChange(ctx, updated, string(from), string(to))

	resp := transport.QuoteFromModel(*updated, nil)
	return &resp, nil
}

func (s *Service) publishStatusChange(ctx context.Context, quote *repository.Quote, from, to string) {
	evt := events.QuoteStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quote.ID,
		OwnerID:     quote.OwnerID,
		Title:       quote.Title,
		FromStatus:  from,
		ToStatus:    to,
		TotalAmount: quote.TotalAmount,
	}
	if quote.ContactEmail != nil {
		evt.OwnerEmail = *quote.ContactEmail
	}
	s.bus.Publish(ctx, evt)
}

// QuoteSummary is the minimal quote header view other modules consume.
type QuoteSummary struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Status       domain.Status
	RoomType     string
	SurfaceArea  *float64
	ContactEmail *string
}

// Summary returns the quote header without ownership scoping, for the
// analysis workflow.
func (s *Service) Summary(ctx context.Context, quoteID uuid.UUID) (QuoteSummary, error) {
	quote, err := s.repo.GetQuoteByID(ctx, quoteID)
	if err != nil {
		return QuoteSummary{}, err
	}
	return QuoteSummary{
		ID:           quote.ID,
		OwnerID:      quote.OwnerID,
		Title:        quote.Title,
		Status:       domain.Status(quote.Status),
		RoomType:     quote.RoomType,
		SurfaceArea:  quote.SurfaceArea,
		ContactEmail: quote.ContactEmail,
	}, nil
}

// newShareToken returns a 32-char hex token for the public quote link.
func newShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
