package service

import (
	"reflect"
	"strings"
	"testing"

	"renoquote_backend/internal/pricing"
	"renoquote_backend/platform/logger"
)

func newTestConsolidator() *Consolidator {
	return NewConsolidator(NewEstimator(pricing.Default()), logger.New("development"))
}

func TestConsolidate_UnionsCategoriesInFirstSeenOrder(t *testing.T) {
	con := newTestConsolidator()

	result := con.Consolidate([]SourceAnalysis{
		{DetectedCategories: []string{"painting", "plumbing"}},
		{DetectedCategories: []string{"plumbing", "tiling"}},
		{DetectedCategories: []string{"painting"}},
	}, ConsolidateOptions{RoomType: "bathroom"})

	want := []string{"painting", "plumbing", "tiling"}
	if !reflect.DeepEqual(result.WorkCategories, want) {
		t.Fatalf("expected categories %v, got %v", want, result.WorkCategories)
	}
	if len(result.Estimates) != 3 {
		t.Fatalf("expected 3 estimates, got %d", len(result.Estimates))
	}

	var sum float64
	for _, e := range result.Estimates {
		sum += e.TotalCost
	}
	if result.TotalEstimate != round2(sum) {
		t.Fatalf("total estimate %v != sum of estimates %v", result.TotalEstimate, round2(sum))
	}
}

func TestConsolidate_SkipsUnknownCategories(t *testing.T) {
	con := newTestConsolidator()

	result := con.Consolidate([]SourceAnalysis{
		{DetectedCategories: []string{"painting", "alchemy"}},
		{DetectedCategories: []string{"plumbing"}},
	}, ConsolidateOptions{})

	want := []string{"painting", "plumbing"}
	if !reflect.DeepEqual(result.WorkCategories, want) {
		t.Fatalf("expected known categories %v, got %v", want, result.WorkCategories)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Category != "alchemy" {
		t.Fatalf("expected alchemy to be skipped, got %v", result.Skipped)
	}

	var sum float64
	for _, e := range result.Estimates {
		sum += e.TotalCost
	}
	if result.TotalEstimate != round2(sum) {
		t.Fatalf("total estimate %v must exclude skipped categories, got %v vs %v", result.TotalEstimate, result.TotalEstimate, round2(sum))
	}
}

func TestConsolidate_EmptyInput(t *testing.T) {
	con := newTestConsolidator()

	result := con.Consolidate(nil, ConsolidateOptions{})
	if len(result.WorkCategories) != 0 || len(result.Estimates) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.TotalEstimate != 0 {
		t.Fatalf("expected zero total, got %v", result.TotalEstimate)
	}
	// The budget-margin note is unconditional.
	if len(result.Recommendations) != 1 || !strings.Contains(result.Recommendations[0], "10-15%") {
		t.Fatalf("expected only the budget margin note, got %v", result.Recommendations)
	}
}

func TestGenerateRecommendations_AppendsAllMatchingRules(t *testing.T) {
	recs := generateRecommendations([]string{"electrical", "plumbing", "demolition", "painting"})

	assertOneContaining := func(substr string) {
		t.Helper()
		count := 0
		for _, r := range recs {
			if strings.Contains(r, substr) {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("expected exactly one recommendation containing %q, got %d in %v", substr, count, recs)
		}
	}

	assertOneContaining("rough-in")      // electrical + plumbing
	assertOneContaining("Demolition")    // demolition present
	assertOneContaining("Paint last")    // painting among >2 categories
	assertOneContaining("budget margin") // always appended

	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d: %v", len(recs), recs)
	}
}

func TestGenerateRecommendations_PaintingAloneGetsNoSequencingAdvice(t *testing.T) {
	recs := generateRecommendations([]string{"painting"})
	for _, r := range recs {
		if strings.Contains(r, "Paint last") {
			t.Fatalf("paint-last advice requires more than two categories, got %v", recs)
		}
	}
}
