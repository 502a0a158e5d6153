package service

import (
	"context"
	"fmt"
	"time"

	estimation "renoquote_backend/internal/estimation/service"
	"renoquote_backend/internal/quotes/domain"
	"renoquote_backend/internal/quotes/repository"
	"renoquote_backend/internal/quotes/transport"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GenerateFromConsolidated bulk-populates a quote from a consolidated
// estimate: one sub-quote with nested materials per category, in
// consolidation order with priorities 1..N. The whole batch runs in one
// transaction, so a concurrent reader never sees a half-populated quote.
// A nil ownerID lets the background worker populate quotes it does not own.
func (s *Service) GenerateFromConsolidated(ctx context.Context, quoteID uuid.UUID, ownerID *uuid.UUID, consolidated estimation.ConsolidatedEstimate) (*transport.QuoteResponse, error) {
	var updated repository.Quote
	err := s.repo.WithQuoteLock(ctx, quoteID, ownerID, func(tx pgx.Tx, quote *repository.Quote) error {
		status := domain.Status(quote.Status)
		if !domain.IsEditable(status) && status != domain.StatusAnalyzing {
			return requireEditable(quote)
		}

		now := time.Now()
		for _, generated := range domain.GenerateSubQuotes(categoryEstimates(consolidated.Estimates)) {
			subQuote := repository.SubQuote{
				ID:            uuid.New(),
				QuoteID:       quoteID,
				WorkCategory:  generated.WorkCategory,
				Title:         generated.Title,
				LaborHours:    generated.LaborHours,
				LaborRate:     generated.LaborRate,
				LaborCost:     generated.LaborCost,
				MaterialsCost: generated.MaterialsCost,
				TotalCost:     generated.TotalCost,
				Priority:      generated.Priority,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := s.repo.InsertSubQuote(ctx, tx, &subQuote); err != nil {
				return err
			}
			for _, line := range generated.Materials {
				material := repository.Material{
					ID:         uuid.New(),
					SubQuoteID: subQuote.ID,
					Name:       line.Name,
					Quantity:   line.Quantity,
					Unit:       line.Unit,
					UnitPrice:  line.UnitPrice,
					TotalPrice: line.TotalPrice,
					CreatedAt:  now,
				}
				if err := s.repo.InsertMaterial(ctx, tx, &material); err != nil {
					return err
				}
			}
		}

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

	subQuotes, err := s.loadTree(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	resp := transport.QuoteFromModel(updated, subQuotes)
	return &resp, nil
}

// categoryEstimates converts consolidation output into the generation
// input of the domain layer.
func categoryEstimates(estimates []estimation.Estimate) []domain.CategoryEstimate {
	converted := make([]domain.CategoryEstimate, 0, len(estimates))
	for _, estimate := range estimates {
		materials := make([]domain.GeneratedMaterial, 0, len(estimate.MaterialLines))
		for _, line := range estimate.MaterialLines {
			materials = append(materials, domain.GeneratedMaterial{
				Name:       line.Name,
				Quantity:   line.Quantity,
				Unit:       line.Unit,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			})
		}
		converted = append(converted, domain.CategoryEstimate{
			WorkCategory:  estimate.WorkCategory,
			LaborHours:    estimate.LaborHours,
			LaborRate:     estimate.LaborRate,
			LaborCost:     estimate.LaborCost,
			MaterialsCost: estimate.MaterialsCost,
			TotalCost:     estimate.TotalCost,
			Materials:     materials,
		})
	}
	return converted
}

// DuplicateQuote deep-copies a quote with fresh identities. The copy
// starts over as a draft; totals are copied verbatim rather than
// recomputed, which is safe because the source satisfied the roll-up
// invariant at copy time.
func (s *Service) DuplicateQuote(ctx context.Context, quoteID, ownerID uuid.UUID) (*transport.QuoteResponse, error) {
	token, err := newShareToken()
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	var copied repository.Quote
	err = s.repo.WithQuoteLock(ctx, quoteID, &ownerID, func(tx pgx.Tx, source *repository.Quote) error {
		now := time.Now()
		copied = copyQuote(*source, token, now)

		query := `
			INSERT INTO quotes (
				id, owner_id, title, status, room_type, surface_area,
				contact_email, contact_phone, share_token,
				materials_total, labor_total, total_amount, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
		if _, err := tx.Exec(ctx, query,
			copied.ID, copied.OwnerID, copied.Title, copied.Status, copied.RoomType,
			copied.SurfaceArea, copied.ContactEmail, copied.ContactPhone, copied.ShareToken,
			copied.MaterialsTotal, copied.LaborTotal, copied.TotalAmount,
			copied.CreatedAt, copied.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert quote copy: %w", err)
		}

		subQuotes, err := s.repo.ListSubQuotesTx(ctx, tx, quoteID)
		if err != nil {
			return err
		}
		for _, sq := range subQuotes {
			materials, err := s.repo.ListMaterialsTx(ctx, tx, sq.ID)
			if err != nil {
				return err
			}

			sqCopy := copySubQuote(sq, copied.ID, now)
			if err := s.repo.InsertSubQuote(ctx, tx, &sqCopy); err != nil {
				return err
			}
			for _, m := range materials {
				mCopy := copyMaterial(m, sqCopy.ID, now)
				if err := s.repo.InsertMaterial(ctx, tx, &mCopy); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	subQuotes, err := s.loadTree(ctx, copied.ID)
	if err != nil {
		return nil, err
	}
	resp := transport.QuoteFromModel(copied, subQuotes)
	return &resp, nil
}

// copyQuote returns a duplicate of source under a fresh identity. The
// copy restarts as a draft with its own share token; totals carry over
// verbatim.
func copyQuote(source repository.Quote, token string, now time.Time) repository.Quote {
	copied := source
	copied.ID = uuid.New()
	copied.Title = source.Title + " (copy)"
	copied.Status = string(domain.StatusDraft)
	copied.ShareToken = token
	copied.CreatedAt = now
	copied.UpdatedAt = now
	return copied
}

// copySubQuote re-parents a sub-quote copy under quoteID with a fresh ID.
func copySubQuote(sq repository.SubQuote, quoteID uuid.UUID, now time.Time) repository.SubQuote {
	copied := sq
	copied.ID = uuid.New()
	copied.QuoteID = quoteID
	copied.CreatedAt = now
	copied.UpdatedAt = now
	return copied
}

// copyMaterial re-parents a material copy under subQuoteID with a fresh ID.
func copyMaterial(m repository.Material, subQuoteID uuid.UUID, now time.Time) repository.Material {
	copied := m
	copied.ID = uuid.New()
	copied.SubQuoteID = subQuoteID
	copied.CreatedAt = now
	return copied
}
