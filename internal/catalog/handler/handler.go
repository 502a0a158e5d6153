// Package handler exposes the read-only catalog reference endpoints.
package handler

import (
	"renoquote_backend/internal/catalog/transport"
	"renoquote_backend/internal/pricing"
	"renoquote_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the pricing reference data for frontend pickers.
type Handler struct {
	cat *pricing.Catalog
}

// New creates a new catalog handler.
func New(cat *pricing.Catalog) *Handler {
	return &Handler{cat: cat}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/work-categories", h.ListWorkCategories)
	rg.GET("/room-templates", h.ListRoomTemplates)
	rg.GET("/quality-tiers", h.ListQualityTiers)
}

// ListWorkCategories returns all work categories with their pricing profiles.
func (h *Handler) ListWorkCategories(c *gin.Context) {
	profiles := h.cat.WorkCategories()
	items := make([]transport.WorkCategoryResponse, len(profiles))
	for i, p := range profiles {
		materials := make([]transport.MaterialSpecResponse, len(p.Materials))
		for j, m := range p.Materials {
			materials[j] = transport.MaterialSpecResponse{
				Name:            m.Name,
				Unit:            m.Unit,
				UnitPrice:       m.UnitPrice,
				DefaultQuantity: m.DefaultQuantity,
			}
		}
		items[i] = transport.WorkCategoryResponse{
			ID:                  p.ID,
			DisplayName:         p.DisplayName,
			LaborRatePerHour:    p.LaborRatePerHour,
			HoursPerSquareMeter: p.HoursPerSquareMeter,
			Materials:           materials,
		}
	}
	httpkit.OK(c, gin.H{"items": items})
}

// ListRoomTemplates returns all room templates.
func (h *Handler) ListRoomTemplates(c *gin.Context) {
	rooms := h.cat.RoomTemplates()
	items := make([]transport.RoomTemplateResponse, len(rooms))
	for i, r := range rooms {
		items[i] = transport.RoomTemplateResponse{
			ID:                 r.ID,
			DisplayName:        r.DisplayName,
			TypicalCategories:  r.TypicalCategories,
			AverageSurfaceArea: r.AverageSurfaceArea,
			ComplexityFactor:   r.ComplexityFactor,
		}
	}
	httpkit.OK(c, gin.H{"items": items})
}

// ListQualityTiers returns all quality tiers.
func (h *Handler) ListQualityTiers(c *gin.Context) {
	tiers := h.cat.QualityTiers()
	items := make([]transport.QualityTierResponse, len(tiers))
	for i, t := range tiers {
		items[i] = transport.QualityTierResponse{
			ID:                  t.ID,
			MaterialsMultiplier: t.MaterialsMultiplier,
			LaborMultiplier:     t.LaborMultiplier,
		}
	}
	httpkit.OK(c, gin.H{"items": items})
}
