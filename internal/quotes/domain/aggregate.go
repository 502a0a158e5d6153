package domain

import "math"

// SubQuoteCosts is the derived cost roll-up of one sub-quote.
type SubQuoteCosts struct {
	LaborCost     float64
	MaterialsCost float64
	TotalCost     float64
}

// QuoteCosts is the derived cost roll-up of a whole quote.
type QuoteCosts struct {
	MaterialsTotal float64
	LaborTotal     float64
	TotalAmount    float64
}

// MaterialTotal derives a material line's total price.
func MaterialTotal(quantity, unitPrice float64) float64 {
	return Round2(quantity * unitPrice)
}

// SubQuoteTotals derives a sub-quote's cost roll-up from its labor fields
// and its materials' line totals. Totals are always derived from the
// current children, never incremented in place.
func SubQuoteTotals(laborHours, laborRate float64, materialTotals []float64) SubQuoteCosts {
	var materials float64
	for _, t := range materialTotals {
		materials += t
	}
	materials = Round2(materials)
	labor := Round2(laborHours * laborRate)
	return SubQuoteCosts{
		LaborCost:     labor,
		MaterialsCost: materials,
		TotalCost:     Round2(materials + labor),
	}
}

// QuoteTotals derives a quote's roll-up from its sub-quotes' costs.
func QuoteTotals(subQuotes []SubQuoteCosts) QuoteCosts {
	var materials, labor float64
	for _, sq := range subQuotes {
		materials += sq.MaterialsCost
		labor += sq.LaborCost
	}
	materials = Round2(materials)
	labor = Round2(labor)
	return QuoteCosts{
		MaterialsTotal: materials,
		LaborTotal:     labor,
		TotalAmount:    Round2(materials + labor),
	}
}

// Round2 rounds a monetary value to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
