// Package service implements the estimation engine: the pure cost
// estimator, the keyword work-type detector and the multi-source
// consolidator. Everything in this package is deterministic, does no I/O
// and is safe for concurrent use.
package service

import (
	"math"

	"renoquote_backend/internal/pricing"
	"renoquote_backend/platform/apperr"
)

// Coverage factors for area- and length-based materials. Square-meter
// materials get a 10% waste margin; meter materials use a heuristic
// linear-per-area ratio.
const (
	coverageFactorSqm   = 1.1
	coverageFactorMeter = 0.5

	workdayHours = 8
)

// EstimateParams is the explicit parameter record for ComputeEstimate.
// WorkCategory is required. RoomType and QualityTier fall back to the
// catalog defaults ("other" / "standard"); a nil SurfaceArea means "use
// the room template's average surface area".
type EstimateParams struct {
	WorkCategory string
	RoomType     string
	SurfaceArea  *float64
	QualityTier  string
}

// MaterialLine is one priced material row of an estimate.
type MaterialLine struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Estimate is the derived, non-persisted result of a single estimation run.
type Estimate struct {
	WorkCategory  string         `json:"workCategory"`
	RoomType      string         `json:"roomType"`
	SurfaceArea   float64        `json:"surfaceArea"`
	QualityTier   string         `json:"qualityTier"`
	MaterialLines []MaterialLine `json:"materialLines"`
	LaborHours    float64        `json:"laborHours"`
	LaborRate     float64        `json:"laborRate"`
	LaborCost     float64        `json:"laborCost"`
	MaterialsCost float64        `json:"materialsCost"`
	TotalCost     float64        `json:"totalCost"`
	EstimatedDays int            `json:"estimatedDays"`
}

// Estimator turns (work category, room type, surface area, quality tier)
// into an itemized cost breakdown using an injected pricing catalog.
type Estimator struct {
	catalog *pricing.Catalog
}

// NewEstimator creates an estimator over the given catalog.
func NewEstimator(cat *pricing.Catalog) *Estimator {
	return &Estimator{catalog: cat}
}

// ComputeEstimate prices one work category for one room.
//
// Rounding is deliberately asymmetric: quantities and labor hours always
// round up (a contractor can't buy 9.3 liters of paint), money rounds to
// two decimals. The bias is conservative: estimates never under-provision.
func (e *Estimator) ComputeEstimate(p EstimateParams) (Estimate, error) {
	profile, err := e.catalog.WorkCategory(p.WorkCategory)
	if err != nil {
		return Estimate{}, err
	}

	room := e.catalog.RoomTemplate(p.RoomType)
	tier := e.catalog.QualityTier(p.QualityTier)

	surface := room.AverageSurfaceArea
	if p.SurfaceArea != nil {
		surface = *p.SurfaceArea
	}
	if surface <= 0 {
		return Estimate{}, apperr.Validation("surface area must be positive")
	}

	lines := make([]MaterialLine, 0, len(profile.Materials))
	var materialsCost float64
	for _, spec := range profile.Materials {
		quantity := materialQuantity(spec, surface, room.AverageSurfaceArea)
		unitPrice := round2(spec.UnitPrice * tier.MaterialsMultiplier)
		totalPrice := round2(quantity * unitPrice)
		materialsCost += totalPrice
		lines = append(lines, MaterialLine{
			Name:       spec.Name,
			Quantity:   quantity,
			Unit:       spec.Unit,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}
	materialsCost = round2(materialsCost)

	laborHours := math.Ceil(surface * profile.HoursPerSquareMeter * room.ComplexityFactor * tier.LaborMultiplier)
	laborRate := math.Round(profile.LaborRatePerHour * tier.LaborMultiplier)
	laborCost := round2(laborHours * laborRate)

	return Estimate{
		WorkCategory:  profile.ID,
		RoomType:      room.ID,
		SurfaceArea:   surface,
		QualityTier:   tier.ID,
		MaterialLines: lines,
		LaborHours:    laborHours,
		LaborRate:     laborRate,
		LaborCost:     laborCost,
		MaterialsCost: materialsCost,
		TotalCost:     round2(materialsCost + laborCost),
		EstimatedDays: int(math.Ceil(laborHours / workdayHours)),
	}, nil
}

// materialQuantity sizes one material for the given surface. Area and
// length units scale with the surface directly; anything else scales the
// spec's default quantity proportionally to the room's average size.
func materialQuantity(spec pricing.MaterialSpec, surface, averageSurface float64) float64 {
	switch spec.Unit {
	case "sqm":
		return math.Ceil(surface * coverageFactorSqm)
	case "meter":
		return math.Ceil(surface * coverageFactorMeter)
	default:
		if averageSurface <= 0 {
			return math.Ceil(spec.DefaultQuantity)
		}
		return math.Ceil(spec.DefaultQuantity * surface / averageSurface)
	}
}

// round2 rounds a monetary value to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
