// Package handler exposes the estimation endpoints.
package handler

import (
	"net/http"

	"renoquote_backend/internal/estimation/service"
	"renoquote_backend/internal/estimation/transport"
	"renoquote_backend/platform/apperr"
	"renoquote_backend/platform/httpkit"
	"renoquote_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for estimates.
type Handler struct {
	estimator    *service.Estimator
	consolidator *service.Consolidator
	val          *validator.Validator
}

// New creates a new estimation handler.
func New(est *service.Estimator, con *service.Consolidator, val *validator.Validator) *Handler {
	return &Handler{estimator: est, consolidator: con, val: val}
}

// RegisterRoutes registers the estimation routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/preview", h.Preview)
	rg.POST("/consolidate", h.Consolidate)
}

// Preview computes a single-category estimate without persisting anything.
func (h *Handler) Preview(c *gin.Context) {
	var req transport.PreviewEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeValidationFailed, msgValidationFailed, err.Error())
		return
	}

	estimate, err := h.estimator.ComputeEstimate(service.EstimateParams{
		WorkCategory: req.WorkCategory,
		RoomType:     req.RoomType,
		SurfaceArea:  req.SurfaceArea,
		QualityTier:  req.QualityTier,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, estimate)
}

// Consolidate detects work categories per source and merges them into one
// priced result. Unknown categories are reported in the skipped list, not
// treated as request failures.
func (h *Handler) Consolidate(c *gin.Context) {
	var req transport.ConsolidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeValidationFailed, msgValidationFailed, err.Error())
		return
	}

	analyses := make([]service.SourceAnalysis, len(req.Analyses))
	for i, a := range req.Analyses {
		analyses[i] = service.SourceAnalysis{
			DetectedCategories: service.DetectWorkTypes(a.Description, a.ExplicitCategories),
		}
	}

	result := h.consolidator.Consolidate(analyses, service.ConsolidateOptions{
		RoomType:    req.RoomType,
		SurfaceArea: req.SurfaceArea,
		QualityTier: req.QualityTier,
	})
	httpkit.OK(c, result)
}
