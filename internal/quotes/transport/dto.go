// Package transport defines the HTTP DTOs for the quotes module.
package transport

import (
	"time"

	"renoquote_backend/internal/quotes/repository"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateQuoteRequest creates an empty draft quote.
type CreateQuoteRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	RoomType     string   `json:"roomType"`
	SurfaceArea  *float64 `json:"surfaceArea" validate:"omitempty,gt=0"`
	ContactEmail *string  `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string  `json:"contactPhone"`
}

// UpdateStatusRequest transitions a quote to a new status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddSubQuoteRequest appends a work-category line to a quote.
type AddSubQuoteRequest struct {
	WorkCategory string  `json:"workCategory" validate:"required"`
	Title        string  `json:"title" validate:"required,max=200"`
	LaborHours   float64 `json:"laborHours" validate:"gte=0"`
	LaborRate    float64 `json:"laborRate" validate:"gte=0"`
	Priority     *int    `json:"priority" validate:"omitempty,gt=0"`
}

// UpdateSubQuoteRequest partially updates a sub-quote. Nil fields keep
// their current value.
type UpdateSubQuoteRequest struct {
	WorkCategory *string  `json:"workCategory"`
	Title        *string  `json:"title"`
	LaborHours   *float64 `json:"laborHours" validate:"omitempty,gte=0"`
	LaborRate    *float64 `json:"laborRate" validate:"omitempty,gte=0"`
	Priority     *int     `json:"priority" validate:"omitempty,gt=0"`
}

// AddMaterialRequest appends a material line to a sub-quote.
type AddMaterialRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	Unit      string  `json:"unit" validate:"required,max=20"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
	Brand     *string `json:"brand"`
	Reference *string `json:"reference"`
}

// UpdateMaterialRequest partially updates a material. Nil fields keep
// their current value.
type UpdateMaterialRequest struct {
	Name      *string  `json:"name"`
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unitPrice" validate:"omitempty,gte=0"`
	Brand     *string  `json:"brand"`
	Reference *string  `json:"reference"`
}

// ListQuotesQuery carries the list filters from the query string.
type ListQuotesQuery struct {
	Status    string `form:"status"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// MaterialResponse is one material line.
type MaterialResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	UnitPrice  float64   `json:"unitPrice"`
	TotalPrice float64   `json:"totalPrice"`
	Brand      *string   `json:"brand,omitempty"`
	Reference  *string   `json:"reference,omitempty"`
}

// SubQuoteResponse is one work-category line with its materials.
type SubQuoteResponse struct {
	ID            uuid.UUID          `json:"id"`
	QuoteID       uuid.UUID          `json:"quoteId"`
	WorkCategory  string             `json:"workCategory"`
	Title         string             `json:"title"`
	LaborHours    float64            `json:"laborHours"`
	LaborRate     float64            `json:"laborRate"`
	LaborCost     float64            `json:"laborCost"`
	MaterialsCost float64            `json:"materialsCost"`
	TotalCost     float64            `json:"totalCost"`
	Priority      int                `json:"priority"`
	Materials     []MaterialResponse `json:"materials,omitempty"`
}

// QuoteResponse is the full quote document.
type QuoteResponse struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Status         string             `json:"status"`
	RoomType       string             `json:"roomType"`
	SurfaceArea    *float64           `json:"surfaceArea,omitempty"`
	ContactEmail   *string            `json:"contactEmail,omitempty"`
	ContactPhone   *string            `json:"contactPhone,omitempty"`
	ShareToken     string             `json:"shareToken,omitempty"`
	MaterialsTotal float64            `json:"materialsTotal"`
	LaborTotal     float64            `json:"laborTotal"`
	TotalAmount    float64            `json:"totalAmount"`
	SubQuotes      []SubQuoteResponse `json:"subQuotes,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// QuoteListResponse is a page of quote headers.
type QuoteListResponse struct {
	Items      []QuoteResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// PublicQuoteResponse is the read-only share-link view. It hides internal
// identifiers the viewer has no use for.
type PublicQuoteResponse struct {
	Title          string             `json:"title"`
	Status         string             `json:"status"`
	RoomType       string             `json:"roomType"`
	MaterialsTotal float64            `json:"materialsTotal"`
	LaborTotal     float64            `json:"laborTotal"`
	TotalAmount    float64            `json:"totalAmount"`
	SubQuotes      []SubQuoteResponse `json:"subQuotes,omitempty"`
}

// ── Mapping ───────────────────────────────────────────────────────────────────

// MaterialFromModel maps a repository material to its response.
func MaterialFromModel(m repository.Material) MaterialResponse {
	return MaterialResponse{
		ID:         m.ID,
		Name:       m.Name,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		UnitPrice:  m.UnitPrice,
		TotalPrice: m.TotalPrice,
		Brand:      m.Brand,
		Reference:  m.Reference,
	}
}

// SubQuoteFromModel maps a repository sub-quote to its response.
func SubQuoteFromModel(sq repository.SubQuote, materials []repository.Material) SubQuoteResponse {
	resp := SubQuoteResponse{
		ID:            sq.ID,
		QuoteID:       sq.QuoteID,
		WorkCategory:  sq.WorkCategory,
		Title:         sq.Title,
		LaborHours:    sq.LaborHours,
		LaborRate:     sq.LaborRate,
		LaborCost:     sq.LaborCost,
		MaterialsCost: sq.MaterialsCost,
		TotalCost:     sq.TotalCost,
		Priority:      sq.Priority,
	}
	for _, m := range materials {
		resp.Materials = append(resp.Materials, MaterialFromModel(m))
	}
	return resp
}

// QuoteFromModel maps a repository quote to its response.
func QuoteFromModel(q repository.Quote, subQuotes []SubQuoteResponse) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		Title:          q.Title,
		Status:         q.Status,
		RoomType:       q.RoomType,
		SurfaceArea:    q.SurfaceArea,
		ContactEmail:   q.ContactEmail,
		ContactPhone:   q.ContactPhone,
		ShareToken:     q.ShareToken,
		MaterialsTotal: q.MaterialsTotal,
		LaborTotal:     q.LaborTotal,
		TotalAmount:    q.TotalAmount,
		SubQuotes:      subQuotes,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}
