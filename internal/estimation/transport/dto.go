// Package transport defines the HTTP DTOs for the estimation module.
package transport

// PreviewEstimateRequest asks for a single-category estimate.
type PreviewEstimateRequest struct {
	WorkCategory string   `json:"workCategory" validate:"required"`
	RoomType     string   `json:"roomType"`
	SurfaceArea  *float64 `json:"surfaceArea" validate:"omitempty,gt=0"`
	QualityTier  string   `json:"qualityTier"`
}

// AnalysisInput is one source (typically one photo) in a consolidation
// batch. Explicit categories win over description-based detection.
type AnalysisInput struct {
	Description        string   `json:"description"`
	ExplicitCategories []string `json:"explicitCategories"`
}

// ConsolidateRequest asks for a merged estimate over several sources.
type ConsolidateRequest struct {
	Analyses    []AnalysisInput `json:"analyses" validate:"required,min=1"`
	RoomType    string          `json:"roomType"`
	SurfaceArea *float64        `json:"surfaceArea" validate:"omitempty,gt=0"`
	QualityTier string          `json:"qualityTier"`
}
