// Package handler exposes the quote aggregator endpoints.
package handler

import (
	"net/http"

	"renoquote_backend/internal/quotes/service"
	"renoquote_backend/internal/quotes/transport"
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

// Handler handles HTTP requests for quotes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the quote routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.POST("/:id/duplicate", h.Duplicate)
	rg.POST("/:id/recompute", h.Recompute)

	rg.POST("/:id/sub-quotes", h.AddSubQuote)
	rg.PATCH("/:id/sub-quotes/:subQuoteId", h.UpdateSubQuote)
	rg.DELETE("/:id/sub-quotes/:subQuoteId", h.DeleteSubQuote)

	rg.POST("/:id/sub-quotes/:subQuoteId/materials", h.AddMaterial)
	rg.PATCH("/:id/sub-quotes/:subQuoteId/materials/:materialId", h.UpdateMaterial)
	rg.DELETE("/:id/sub-quotes/:subQuoteId/materials/:materialId", h.DeleteMaterial)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// Create creates an empty draft quote.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateQuoteRequest
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
	quote, err := h.svc.CreateQuote(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, quote)
}

// List returns the caller's quotes.
func (h *Handler) List(c *gin.Context) {
	var query transport.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeBadRequest, msgInvalidRequest, nil)
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	result, err := h.svc.ListQuotes(c.Request.Context(), id.UserID(), query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one quote with its full tree.
func (h *Handler) Get(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	quote, err := h.svc.GetQuote(c.Request.Context(), quoteID, id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, quote)
}

// Delete removes a quote and everything under it.
func (h *Handler) Delete(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteQuote(c.Request.Context(), quoteID, id.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus transitions a quote to a new status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.UpdateStatusRequest
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
	quote, err := h.svc.UpdateStatus(c.Request.Context(), quoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, quote)
}

// Duplicate deep-copies a quote into a fresh draft.
func (h *Handler) Duplicate(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	quote, err := h.svc.DuplicateQuote(c.Request.Context(), quoteID, id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, quote)
}

// Recompute re-derives a quote's totals from its children.
func (h *Handler) Recompute(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	quote, err := h.svc.RecomputeQuoteTotals(c.Request.Context(), quoteID, id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, quote)
}

// AddSubQuote appends a work-category line to a quote.
func (h *Handler) AddSubQuote(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.AddSubQuoteRequest
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
	subQuote, err := h.svc.AddSubQuote(c.Request.Context(), quoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, subQuote)
}

// UpdateSubQuote partially updates a sub-quote.
func (h *Handler) UpdateSubQuote(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	subQuoteID, ok := parseUUIDParam(c, "subQuoteId")
	if !ok {
		return
	}
	var req transport.UpdateSubQuoteRequest
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
	subQuote, err := h.svc.UpdateSubQuote(c.Request.Context(), quoteID, subQuoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, subQuote)
}

// DeleteSubQuote removes a sub-quote and its materials.
func (h *Handler) DeleteSubQuote(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	subQuoteID, ok := parseUUIDParam(c, "subQuoteId")
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteSubQuote(c.Request.Context(), quoteID, subQuoteID, id.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMaterial appends a material line to a sub-quote.
func (h *Handler) AddMaterial(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	subQuoteID, ok := parseUUIDParam(c, "subQuoteId")
	if !ok {
		return
	}
	var req transport.AddMaterialRequest
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
	material, err := h.svc.AddMaterial(c.Request.Context(), quoteID, subQuoteID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, material)
}

// UpdateMaterial partially updates a material.
func (h *Handler) UpdateMaterial(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	subQuoteID, ok := parseUUIDParam(c, "subQuoteId")
	if !ok {
		return
	}
	materialID, ok := parseUUIDParam(c, "materialId")
	if !ok {
		return
	}
	var req transport.UpdateMaterialRequest
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
	material, err := h.svc.UpdateMaterial(c.Request.Context(), quoteID, subQuoteID, materialID, id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, material)
}

// DeleteMaterial removes a material line.
func (h *Handler) DeleteMaterial(c *gin.Context) {
	quoteID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	subQuoteID, ok := parseUUIDParam(c, "subQuoteId")
	if !ok {
		return
	}
	materialID, ok := parseUUIDParam(c, "materialId")
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteMaterial(c.Request.Context(), quoteID, subQuoteID, materialID, id.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}
