// Package transport defines the HTTP DTOs for the catalog module.
package transport

// MaterialSpecResponse describes one catalog material.
type MaterialSpecResponse struct {
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unitPrice"`
	DefaultQuantity float64 `json:"defaultQuantity"`
}

// WorkCategoryResponse describes one work category's pricing profile.
type WorkCategoryResponse struct {
	ID                  string                 `json:"id"`
	DisplayName         string                 `json:"displayName"`
	LaborRatePerHour    float64                `json:"laborRatePerHour"`
	HoursPerSquareMeter float64                `json:"hoursPerSquareMeter"`
	Materials           []MaterialSpecResponse `json:"materials"`
}

// RoomTemplateResponse describes one room template.
type RoomTemplateResponse struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"displayName"`
	TypicalCategories  []string `json:"typicalCategories"`
	AverageSurfaceArea float64  `json:"averageSurfaceArea"`
	ComplexityFactor   float64  `json:"complexityFactor"`
}

// QualityTierResponse describes one quality tier.
type QualityTierResponse struct {
	ID                  string  `json:"id"`
	MaterialsMultiplier float64 `json:"materialsMultiplier"`
	LaborMultiplier     float64 `json:"laborMultiplier"`
}
