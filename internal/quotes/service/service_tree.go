package service

import (
	"context"
	"strings"
	"time"

	"renoquote_backend/internal/quotes/domain"
	"renoquote_backend/internal/quotes/repository"
	"renoquote_backend/internal/quotes/transport"
	"renoquote_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const notEditableMsg = "quote is finalized and can no longer be edited"

// requireEditable rejects structural edits on finalized quotes.
func requireEditable(quote *repository.Quote) error {
	if !domain.IsEditable(domain.Status(quote.Status)) {
		return apperr.InvalidState(notEditableMsg)
	}
	return nil
}

// AddSubQuote appends a work-category line to a quote. An omitted priority
// lands after all existing lines.
func (s *Service) AddSubQuote(ctx context.Context, quoteID, ownerID uuid.UUID, req transport.AddSubQuoteRequest) (*transport.SubQuoteResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	if req.LaborHours < 0 || req.LaborRate < 0 {
		return nil, apperr.Validation("labor hours and rate must not be negative")
	}

	var created repository.SubQuote
	err := s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		if err := requireEditable(quote); err != nil {
			return err
		}

		priority := 0
		if req.Priority != nil {
			priority = *req.Priority
		} else {
			next, err := s.repo.NextPriority(ctx, tx, quoteID)
			if err != nil {
				return err
			}
			priority = next
		}

		costs := domain.SubQuoteTotals(req.LaborHours, req.LaborRate, nil)
		now := time.Now()
		created = repository.SubQuote{
			ID:            uuid.New(),
			QuoteID:       quoteID,
			WorkCategory:  req.WorkCategory,
			Title:         req.Title,
			LaborHours:    req.LaborHours,
			LaborRate:     req.LaborRate,
			LaborCost:     costs.LaborCost,
			MaterialsCost: costs.MaterialsCost,
			TotalCost:     costs.TotalCost,
			Priority:      priority,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.InsertSubQuote(ctx, tx, &created); err != nil {
			return err
		}
		_, err := s.repo.RecomputeQuoteTotals(ctx, tx, quoteID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := transport.SubQuoteFromModel(created, nil)
	return &resp, nil
}

// UpdateSubQuote merges the supplied fields over the existing sub-quote,
// re-derives its costs and rolls the change up to the quote.
func (s *Service) UpdateSubQuote(ctx context.Context, quoteID, subQuoteID, ownerID uuid.UUID, req transport.UpdateSubQuoteRequest) (*transport.SubQuoteResponse, error) {
	var updated repository.SubQuote
	err := s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		if err := requireEditable(quote); err != nil {
			return err
		}

		sq, err := s.repo.GetSubQuote(ctx, tx, quoteID, subQuoteID)
		if err != nil {
			return err
		}

		if req.WorkCategory != nil {
			sq.WorkCategory = *req.WorkCategory
		}
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return apperr.Validation("title must not be empty")
			}
			sq.Title = *req.Title
		}
		if req.LaborHours != nil {
			if *req.LaborHours < 0 {
				return apperr.Validation("labor hours must not be negative")
			}
			sq.LaborHours = *req.LaborHours
		}
		if req.LaborRate != nil {
			if *req.LaborRate < 0 {
				return apperr.Validation("labor rate must not be negative")
			}
			sq.LaborRate = *req.LaborRate
		}
		if req.Priority != nil {
			sq.Priority = *req.Priority
		}
		sq.UpdatedAt = time.Now()

		if err := s.repo.UpdateSubQuote(ctx, tx, sq); err != nil {
			return err
		}
		// Labor fields may have changed; re-derive costs from the merged record.
		if _, err := s.repo.RecomputeSubQuoteCosts(ctx, tx, quoteID, subQuoteID); err != nil {
			return err
		}
		if _, err := s.repo.RecomputeQuoteTotals(ctx, tx, quoteID); err != nil {
			return err
		}

		refreshed, err := s.repo.GetSubQuote(ctx, tx, quoteID, subQuoteID)
		if err != nil {
			return err
		}
		updated = *refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := transport.SubQuoteFromModel(updated, nil)
	return &resp, nil
}

// DeleteSubQuote removes a sub-quote (its materials cascade) and rolls the
// change up to the quote.
func (s *Service) DeleteSubQuote(ctx context.Context, quoteID, subQuoteID, ownerID uuid.UUID) error {
	return s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		if err := requireEditable(quote); err != nil {
			return err
		}
		if err := s.repo.DeleteSubQuote(ctx, tx, quoteID, subQuoteID); err != nil {
			return err
		}
		_, err := s.repo.RecomputeQuoteTotals(ctx, tx, quoteID)
		return err
	})
}

// AddMaterial appends a material line to a sub-quote and rolls the change
// up through the sub-quote to the quote.
func (s *Service) AddMaterial(ctx context.Context, quoteID, subQuoteID, ownerID uuid.UUID, req transport.AddMaterialRequest) (*transport.MaterialResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("material name must not be empty")
	}
	if req.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}
	if req.UnitPrice < 0 {
		return nil, apperr.Validation("unit price must not be negative")
	}

	var created repository.Material
	err := s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		if err := requireEditable(quote); err != nil {
			return err
		}
		if _, err := s.repo.GetSubQuote(ctx, tx, quoteID, subQuoteID); err != nil {
			return err
		}

		created = repository.Material{
			ID:         uuid.New(),
			SubQuoteID: subQuoteID,
			Name:       req.Name,
			Quantity:   req.Quantity,
			Unit:       req.Unit,
			UnitPrice:  req.UnitPrice,
			TotalPrice: domain.MaterialTotal(req.Quantity, req.UnitPrice),
			Brand:      req.Brand,
			Reference:  req.Reference,
			CreatedAt:  time.Now(),
		}
		if err := s.repo.InsertMaterial(ctx, tx, &created); err != nil {
			return err
		}
		return s.rollUp(ctx, tx, quoteID, subQuoteID)
	})
	if err != nil {
		return nil, err
	}

	resp := transport.MaterialFromModel(created)
	return &resp, nil
}

// UpdateMaterial merges the supplied fields over the existing material,
// re-derives its total and rolls the change up.
func (s *Service) UpdateMaterial(ctx context.Context, quoteID, subQuoteID, materialID, ownerID uuid.UUID, req transport.UpdateMaterialRequest) (*transport.MaterialResponse, error) {
	var updated repository.Material
	err := s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		if err := requireEditable(quote); err != nil {
			return err
		}
		if _, err := s.repo.GetSubQuote(ctx, tx, quoteID, subQuoteID); err != nil {
			return err
		}
		m, err := s.repo.GetMaterial(ctx, tx, subQuoteID, materialID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return apperr.Validation("material name must not be empty")
			}
			m.Name = *req.Name
		}
		if req.Quantity != nil {
			if *req.Quantity <= 0 {
				return apperr.Validation("quantity must be positive")
			}
			m.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			m.Unit = *req.Unit
		}
		if req.UnitPrice != nil {
			if *req.UnitPrice < 0 {
				return apperr.Validation("unit price must not be negative")
			}
			m.UnitPrice = *req.UnitPrice
		}
		if req.Brand != nil {
			m.Brand = req.Brand
		}
		if req.Reference != nil {
			m.Reference = req.Reference
		}
		m.TotalPrice = domain.MaterialTotal(m.Quantity, m.UnitPrice)

		if err := s.repo.UpdateMaterial(ctx, tx, m); err != nil {
			return err
		}
		if err := s.rollUp(ctx, tx, quoteID, subQuoteID); err != nil {
			return err
		}
		updated = *m
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := transport.MaterialFromModel(updated)
	return &resp, nil
}

// DeleteMaterial removes a material line and rolls the change up.
func (s *Service) DeleteMaterial(ctx context.Context, quoteID, subQuoteID, materialID, ownerID uuid.UUID) error {
	return s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		if err := requireEditable(quote); err != nil {
			return err
		}
		if _, err := s.repo.GetSubQuote(ctx, tx, quoteID, subQuoteID); err != nil {
			return err
		}
		if err := s.repo.DeleteMaterial(ctx, tx, subQuoteID, materialID); err != nil {
			return err
		}
		return s.rollUp(ctx, tx, quoteID, subQuoteID)
	})
}

// RecomputeQuoteTotals re-derives a quote's totals from its current
// children. With no intervening mutation this is a no-op by construction.
func (s *Service) RecomputeQuoteTotals(ctx context.Context, quoteID, ownerID uuid.UUID) (*transport.QuoteResponse, error) {
	var updated repository.Quote
	err := s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		totals, err := s.repo.RecomputeQuoteTotals(ctx, tx, quoteID)
		if err != nil {
			return err
		}
		updated = *quote
		updated.MaterialsTotal = totals.MaterialsTotal
		updated.LaborTotal = totals.LaborTotal
		updated.TotalAmount = totals.TotalAmount
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := transport.QuoteFromModel(updated, nil)
	return &resp, nil
}

// rollUp re-derives the sub-quote's costs, then the quote's totals.
func (s *Service) rollUp(ctx context.Context, tx pgx.Tx, quoteID, subQuoteID uuid.UUID) error {
	if _, err := s.repo.RecomputeSubQuoteCosts(ctx, tx, quoteID, subQuoteID); err != nil {
		return err
	}
	_, err := s.repo.RecomputeQuoteTotals(ctx, tx, quoteID)
	return err
}
