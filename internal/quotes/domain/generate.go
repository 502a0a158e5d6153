package domain

import "fmt"

// GeneratedMaterial is one material line of a generated sub-quote.
type GeneratedMaterial struct {
	Name       string
	Quantity   float64
	Unit       string
	UnitPrice  float64
	TotalPrice float64
}

// CategoryEstimate is the priced per-category input to quote generation.
type CategoryEstimate struct {
	WorkCategory  string
	LaborHours    float64
	LaborRate     float64
	LaborCost     float64
	MaterialsCost float64
	TotalCost     float64
	Materials     []GeneratedMaterial
}

// GeneratedSubQuote is the unpersisted shape of one sub-quote produced
// from a consolidated estimate.
type GeneratedSubQuote struct {
	WorkCategory  string
	Title         string
	LaborHours    float64
	LaborRate     float64
	LaborCost     float64
	MaterialsCost float64
	TotalCost     float64
	Priority      int
	Materials     []GeneratedMaterial
}

// GenerateSubQuotes maps consolidated per-category estimates to
// sub-quotes in consolidation order, assigning priorities 1..N.
func GenerateSubQuotes(estimates []CategoryEstimate) []GeneratedSubQuote {
	subQuotes := make([]GeneratedSubQuote, 0, len(estimates))
	for i, estimate := range estimates {
		subQuotes = append(subQuotes, GeneratedSubQuote{
			WorkCategory:  estimate.WorkCategory,
			Title:         SubQuoteTitle(estimate.WorkCategory),
			LaborHours:    estimate.LaborHours,
			LaborRate:     estimate.LaborRate,
			LaborCost:     estimate.LaborCost,
			MaterialsCost: estimate.MaterialsCost,
			TotalCost:     estimate.TotalCost,
			Priority:      i + 1,
			Materials:     estimate.Materials,
		})
	}
	return subQuotes
}

// SubQuoteTitle derives the display title of a generated sub-quote.
func SubQuoteTitle(workCategory string) string {
	return fmt.Sprintf("%s works", workCategory)
}
