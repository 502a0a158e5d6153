package service

import (
	"renoquote_backend/platform/apperr"
	"renoquote_backend/platform/logger"
)

// SourceAnalysis is the per-photo detection result fed into consolidation.
type SourceAnalysis struct {
	DetectedCategories []string `json:"detectedCategories"`
}

// ConsolidateOptions carries the shared room context for a batch. Zero
// values fall back to the catalog defaults, same as EstimateParams.
type ConsolidateOptions struct {
	RoomType    string
	SurfaceArea *float64
	QualityTier string
}

// SkippedCategory reports one category dropped from a consolidation batch.
type SkippedCategory struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// ConsolidatedEstimate merges per-photo detections into one category set
// with one estimate per category.
type ConsolidatedEstimate struct {
	WorkCategories  []string          `json:"workCategories"`
	Estimates       []Estimate        `json:"estimates"`
	TotalEstimate   float64           `json:"totalEstimate"`
	Recommendations []string          `json:"recommendations"`
	Skipped         []SkippedCategory `json:"skipped,omitempty"`
}

// Consolidator merges multiple detections into a single priced result.
type Consolidator struct {
	estimator *Estimator
	log       *logger.Logger
}

// NewConsolidator creates a consolidator around the given estimator.
func NewConsolidator(est *Estimator, log *logger.Logger) *Consolidator {
	return &Consolidator{estimator: est, log: log}
}

// Consolidate unions the detected categories of all analyses (first-seen
// order) and prices each one. A category the catalog doesn't know is
// skipped and reported, never fatal: partial results for the remaining
// categories are still returned.
func (c *Consolidator) Consolidate(analyses []SourceAnalysis, opts ConsolidateOptions) ConsolidatedEstimate {
	var all []string
	for _, a := range analyses {
		all = append(all, a.DetectedCategories...)
	}
	categories := dedupe(all)

	result := ConsolidatedEstimate{WorkCategories: make([]string, 0, len(categories))}
	var total float64
	for _, category := range categories {
		estimate, err := c.estimator.ComputeEstimate(EstimateParams{
			WorkCategory: category,
			RoomType:     opts.RoomType,
			SurfaceArea:  opts.SurfaceArea,
			QualityTier:  opts.QualityTier,
		})
		if err != nil {
			reason := err.Error()
			if appErr, ok := err.(*apperr.Error); ok {
				reason = appErr.Message
			}
			c.log.CategorySkipped(category, reason)
			result.Skipped = append(result.Skipped, SkippedCategory{Category: category, Reason: reason})
			continue
		}
		result.WorkCategories = append(result.WorkCategories, category)
		result.Estimates = append(result.Estimates, estimate)
		total += estimate.TotalCost
	}
	result.TotalEstimate = round2(total)
	result.Recommendations = generateRecommendations(result.WorkCategories)
	return result
}

// generateRecommendations evaluates a fixed rule table over the category
// combination. Every matching rule is appended; there is no first-match
// priority. The budget-margin note is always present.
func generateRecommendations(categories []string) []string {
	present := make(map[string]bool, len(categories))
	for _, c := range categories {
		present[c] = true
	}

	var recs []string
	if present["electrical"] && present["plumbing"] {
		recs = append(recs, "Schedule electrical and plumbing rough-in before any wall closing: both trades need open walls and coordinate on routing.")
	}
	if present["demolition"] {
		recs = append(recs, "Demolition first: arrange debris disposal and check for asbestos in buildings from before 1994 before any strip-out starts.")
	}
	if present["painting"] && len(categories) > 2 {
		recs = append(recs, "Paint last: finish all dust-producing work before the painter arrives, or the finish will need redoing.")
	}
	if present["flooring"] && present["tiling"] {
		recs = append(recs, "Align floor heights between tiled and non-tiled areas early; transition strips only hide a few millimeters.")
	}
	if present["kitchen"] || present["bathroom"] {
		recs = append(recs, "Order kitchen and sanitary fixtures well ahead: delivery lead times of 4-8 weeks routinely stall these renovations.")
	}
	recs = append(recs, "Reserve a 10-15% budget margin on top of this estimate for unforeseen work.")
	return recs
}
