package service

import (
	"math"
	"testing"

	"renoquote_backend/internal/pricing"
	"renoquote_backend/platform/apperr"
)

func newTestEstimator() *Estimator {
	return NewEstimator(pricing.Default())
}

func floatPtr(v float64) *float64 { return &v }

func TestComputeEstimate_PaintingLivingRoom(t *testing.T) {
	est := newTestEstimator()

	result, err := est.ComputeEstimate(EstimateParams{
		WorkCategory: "painting",
		RoomType:     "living_room",
		SurfaceArea:  floatPtr(25),
		QualityTier:  "standard",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 25 sqm * 0.4 h/sqm * complexity 1.0 * labor multiplier 1.0
	if result.LaborHours != 10 {
		t.Fatalf("expected 10 labor hours, got %v", result.LaborHours)
	}
	if result.LaborRate != 50 {
		t.Fatalf("expected labor rate 50, got %v", result.LaborRate)
	}
	if result.LaborCost != 500 {
		t.Fatalf("expected labor cost 500, got %v", result.LaborCost)
	}
	if result.EstimatedDays != 2 {
		t.Fatalf("expected 2 estimated days, got %d", result.EstimatedDays)
	}
	if result.TotalCost != result.MaterialsCost+result.LaborCost {
		t.Fatalf("total %v != materials %v + labor %v", result.TotalCost, result.MaterialsCost, result.LaborCost)
	}
}

func TestComputeEstimate_UnknownCategory(t *testing.T) {
	est := newTestEstimator()

	_, err := est.ComputeEstimate(EstimateParams{WorkCategory: "teleportation"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !apperr.IsCode(err, apperr.CodeUnknownWorkCategory) {
		t.Fatalf("expected unknown_work_category code, got %v", err)
	}
}

func TestComputeEstimate_ConservativeRounding(t *testing.T) {
	est := newTestEstimator()

	// 13 sqm in a 25 sqm-average room forces fractional demand everywhere.
	result, err := est.ComputeEstimate(EstimateParams{
		WorkCategory: "painting",
		RoomType:     "living_room",
		SurfaceArea:  floatPtr(13),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cat := pricing.Default()
	profile, _ := cat.WorkCategory("painting")
	room := cat.RoomTemplate("living_room")
	for i, line := range result.MaterialLines {
		if line.Quantity != math.Trunc(line.Quantity) {
			t.Fatalf("material %q: quantity %v is not an integer", line.Name, line.Quantity)
		}
		spec := profile.Materials[i]
		var demand float64
		switch spec.Unit {
		case "sqm":
			demand = 13 * coverageFactorSqm
		case "meter":
			demand = 13 * coverageFactorMeter
		default:
			demand = spec.DefaultQuantity * 13 / room.AverageSurfaceArea
		}
		if line.Quantity < demand {
			t.Fatalf("material %q: quantity %v rounded below demand %v", line.Name, line.Quantity, demand)
		}
	}

	rawHours := 13 * profile.HoursPerSquareMeter * room.ComplexityFactor
	if result.LaborHours < rawHours || result.LaborHours != math.Trunc(result.LaborHours) {
		t.Fatalf("labor hours %v not rounded up from %v", result.LaborHours, rawHours)
	}
}

func TestComputeEstimate_DefaultSurfaceFromRoomTemplate(t *testing.T) {
	est := newTestEstimator()

	result, err := est.ComputeEstimate(EstimateParams{
		WorkCategory: "painting",
		RoomType:     "living_room",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room := pricing.Default().RoomTemplate("living_room")
	if result.SurfaceArea != room.AverageSurfaceArea {
		t.Fatalf("expected surface %v from room template, got %v", room.AverageSurfaceArea, result.SurfaceArea)
	}
}

func TestComputeEstimate_UnknownRoomAndTierFallBack(t *testing.T) {
	est := newTestEstimator()

	result, err := est.ComputeEstimate(EstimateParams{
		WorkCategory: "painting",
		RoomType:     "ballroom",
		QualityTier:  "imperial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RoomType != pricing.DefaultRoomID {
		t.Fatalf("expected room fallback %q, got %q", pricing.DefaultRoomID, result.RoomType)
	}
	if result.QualityTier != pricing.DefaultTierID {
		t.Fatalf("expected tier fallback %q, got %q", pricing.DefaultTierID, result.QualityTier)
	}
}

func TestComputeEstimate_QualityTierMultipliers(t *testing.T) {
	est := newTestEstimator()

	standard, err := est.ComputeEstimate(EstimateParams{
		WorkCategory: "painting",
		RoomType:     "living_room",
		SurfaceArea:  floatPtr(25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	premium, err := est.ComputeEstimate(EstimateParams{
		WorkCategory: "painting",
		RoomType:     "living_room",
		SurfaceArea:  floatPtr(25),
		QualityTier:  "premium",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if premium.LaborRate <= standard.LaborRate {
		t.Fatalf("premium labor rate %v not above standard %v", premium.LaborRate, standard.LaborRate)
	}
	if premium.MaterialsCost <= standard.MaterialsCost {
		t.Fatalf("premium materials %v not above standard %v", premium.MaterialsCost, standard.MaterialsCost)
	}
}

func TestComputeEstimate_NonPositiveSurface(t *testing.T) {
	est := newTestEstimator()

	for _, surface := range []float64{0, -5} {
		_, err := est.ComputeEstimate(EstimateParams{
			WorkCategory: "painting",
			SurfaceArea:  floatPtr(surface),
		})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("surface %v: expected validation error, got %v", surface, err)
		}
	}
}
