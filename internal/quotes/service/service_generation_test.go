package service

import (
	"testing"
	"time"

	estimation "renoquote_backend/internal/estimation/service"
	"renoquote_backend/internal/pricing"
	"renoquote_backend/internal/quotes/domain"
	"renoquote_backend/internal/quotes/repository"
	"renoquote_backend/platform/logger"

	"github.com/google/uuid"
)

func TestGenerateFromConsolidated_MappingMatchesConsolidation(t *testing.T) {
	consolidator := estimation.NewConsolidator(estimation.NewEstimator(pricing.Default()), logger.New("development"))
	consolidated := consolidator.Consolidate([]estimation.SourceAnalysis{
		{DetectedCategories: []string{"painting", "flooring"}},
		{DetectedCategories: []string{"electrical", "painting"}},
	}, estimation.ConsolidateOptions{RoomType: "living_room"})

	generated := domain.GenerateSubQuotes(categoryEstimates(consolidated.Estimates))
	if len(generated) != len(consolidated.WorkCategories) {
		t.Fatalf("expected %d sub-quotes, got %d", len(consolidated.WorkCategories), len(generated))
	}
	for i, sq := range generated {
		if sq.WorkCategory != consolidated.WorkCategories[i] {
			t.Fatalf("sub-quote %d: expected category %q, got %q", i, consolidated.WorkCategories[i], sq.WorkCategory)
		}
		if sq.Priority != i+1 {
			t.Fatalf("sub-quote %d: expected priority %d, got %d", i, i+1, sq.Priority)
		}
	}

	// The quote roll-up derived from the generated tree must land on the
	// same amount the consolidation promised.
	costs := make([]domain.SubQuoteCosts, 0, len(generated))
	for _, sq := range generated {
		var lineTotals []float64
		for _, m := range sq.Materials {
			lineTotals = append(lineTotals, m.TotalPrice)
		}
		costs = append(costs, domain.SubQuoteTotals(sq.LaborHours, sq.LaborRate, lineTotals))
	}
	totals := domain.QuoteTotals(costs)
	if totals.TotalAmount != consolidated.TotalEstimate {
		t.Fatalf("expected quote total %v to match consolidated estimate %v", totals.TotalAmount, consolidated.TotalEstimate)
	}
}

func TestCopyQuote_FreshIdentityDraftVerbatimTotals(t *testing.T) {
	area := 24.5
	email := "owner@example.com"
	source := repository.Quote{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Title:          "Kitchen refresh",
		Status:         string(domain.StatusApproved),
		RoomType:       "kitchen",
		SurfaceArea:    &area,
		ContactEmail:   &email,
		ShareToken:     "source-token",
		MaterialsTotal: 1240.75,
		LaborTotal:     2210,
		TotalAmount:    3450.75,
		CreatedAt:      time.Now().Add(-48 * time.Hour),
		UpdatedAt:      time.Now().Add(-24 * time.Hour),
	}

	now := time.Now()
	copied := copyQuote(source, "copy-token", now)

	if copied.ID == source.ID {
		t.Fatal("expected copy to get a fresh id")
	}
	if copied.OwnerID != source.OwnerID {
		t.Fatalf("expected copy to keep owner %s, got %s", source.OwnerID, copied.OwnerID)
	}
	if copied.Title != "Kitchen refresh (copy)" {
		t.Fatalf("unexpected copy title %q", copied.Title)
	}
	if copied.Status != string(domain.StatusDraft) {
		t.Fatalf("expected copy status draft, got %q", copied.Status)
	}
	if copied.ShareToken != "copy-token" {
		t.Fatalf("expected fresh share token, got %q", copied.ShareToken)
	}
	if copied.MaterialsTotal != source.MaterialsTotal || copied.LaborTotal != source.LaborTotal || copied.TotalAmount != source.TotalAmount {
		t.Fatalf("expected verbatim totals, got %+v", copied)
	}
	if !copied.CreatedAt.Equal(now) || !copied.UpdatedAt.Equal(now) {
		t.Fatal("expected copy timestamps to reset")
	}
}

func TestCopySubQuoteAndMaterial_ReparentedWithVerbatimCosts(t *testing.T) {
	source := repository.SubQuote{
		ID:            uuid.New(),
		QuoteID:       uuid.New(),
		WorkCategory:  "painting",
		Title:         "painting works",
		LaborHours:    10,
		LaborRate:     45,
		LaborCost:     450,
		MaterialsCost: 120.5,
		TotalCost:     570.5,
		Priority:      2,
		CreatedAt:     time.Now().Add(-time.Hour),
		UpdatedAt:     time.Now().Add(-time.Hour),
	}

	now := time.Now()
	newQuoteID := uuid.New()
	sqCopy := copySubQuote(source, newQuoteID, now)

	if sqCopy.ID == source.ID {
		t.Fatal("expected sub-quote copy to get a fresh id")
	}
	if sqCopy.QuoteID != newQuoteID {
		t.Fatalf("expected sub-quote copy re-parented to %s, got %s", newQuoteID, sqCopy.QuoteID)
	}
	if sqCopy.LaborCost != source.LaborCost || sqCopy.MaterialsCost != source.MaterialsCost || sqCopy.TotalCost != source.TotalCost {
		t.Fatalf("expected verbatim costs, got %+v", sqCopy)
	}
	if sqCopy.Priority != source.Priority {
		t.Fatalf("expected priority %d, got %d", source.Priority, sqCopy.Priority)
	}

	material := repository.Material{
		ID:         uuid.New(),
		SubQuoteID: source.ID,
		Name:       "wall paint",
		Quantity:   5,
		Unit:       "liter",
		UnitPrice:  24.1,
		TotalPrice: 120.5,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	mCopy := copyMaterial(material, sqCopy.ID, now)

	if mCopy.ID == material.ID {
		t.Fatal("expected material copy to get a fresh id")
	}
	if mCopy.SubQuoteID != sqCopy.ID {
		t.Fatalf("expected material copy re-parented to %s, got %s", sqCopy.ID, mCopy.SubQuoteID)
	}
	if mCopy.TotalPrice != material.TotalPrice || mCopy.UnitPrice != material.UnitPrice {
		t.Fatalf("expected verbatim prices, got %+v", mCopy)
	}
}
