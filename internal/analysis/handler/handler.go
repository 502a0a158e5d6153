// Package handler exposes the photo-analysis endpoints.
package handler

import (
	"net/http"

	"renoquote_backend/internal/analysis/service"
	"renoquote_backend/internal/analysis/transport"
	"renoquote_backend/platform/apperr"
	"renoquote_backend/platform/httpkit"
	"renoquote_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles HTTP requests for photo analysis.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new analysis handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the analysis routes on the quotes group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/photos/upload-urls", h.UploadURLs)
	rg.DELETE("/:id/photos", h.DeletePhotos)
	rg.POST("/:id/analysis", h.Create)
	rg.GET("/:id/analysis/:jobId", h.Get)
	rg.GET("/:id/analysis/:jobId/photos", h.Photos)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// UploadURLs issues presigned upload URLs for a photo batch.
func (h *Handler) UploadURLs(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeValidationFailed, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	urls, err := h.svc.GenerateUploadURLs(c.Request.Context(), quoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"uploads": urls})
}

// DeletePhotos removes uploaded photo objects from storage.
func (h *Handler) DeletePhotos(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.DeletePhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeValidationFailed, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	err := h.svc.DeletePhotos(c.Request.Context(), quoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": len(req.FileKeys)})
}

// Create starts a photo-analysis job on a quote.
func (h *Handler) Create(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeValidationFailed, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	job, err := h.svc.CreateJob(c.Request.Context(), quoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, job)
}

// Get returns the status of an analysis job, with its result once done.
func (h *Handler) Get(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	jobID, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	job, err := h.svc.GetJob(c.Request.Context(), jobID, quoteID, id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, job)
}

// Photos lists a job's photos with presigned download URLs.
func (h *Handler) Photos(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	jobID, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	photos, err := h.svc.ListJobPhotos(c.Request.Context(), jobID, quoteID, id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"photos": photos})
}
