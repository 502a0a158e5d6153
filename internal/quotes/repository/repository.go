package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renoquote_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// Quote is the database model for a quote header.
type Quote struct {
	ID             uuid.UUID `db:"id"`
	OwnerID        uuid.UUID `db:"owner_id"`
	Title          string    `db:"title"`
	Status         string    `db:"status"`
	RoomType       string    `db:"room_type"`
	SurfaceArea    *float64  `db:"surface_area"`
	ContactEmail   *string   `db:"contact_email"`
	ContactPhone   *string   `db:"contact_phone"`
	ShareToken     string    `db:"share_token"`
	MaterialsTotal float64   `db:"materials_total"`
	LaborTotal     float64   `db:"labor_total"`
	TotalAmount    float64   `db:"total_amount"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// SubQuote is the database model for one work-category line of a quote.
type SubQuote struct {
	ID            uuid.UUID `db:"id"`
	QuoteID       uuid.UUID `db:"quote_id"`
	WorkCategory  string    `db:"work_category"`
	Title         string    `db:"title"`
	LaborHours    float64   `db:"labor_hours"`
	LaborRate     float64   `db:"labor_rate"`
	LaborCost     float64   `db:"labor_cost"`
	MaterialsCost float64   `db:"materials_cost"`
	TotalCost     float64   `db:"total_cost"`
	Priority      int       `db:"priority"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Material is the database model for one material line of a sub-quote.
type Material struct {
	ID         uuid.UUID `db:"id"`
	SubQuoteID uuid.UUID `db:"sub_quote_id"`
	Name       string    `db:"name"`
	Quantity   float64   `db:"quantity"`
	Unit       string    `db:"unit"`
	UnitPrice  float64   `db:"unit_price"`
	TotalPrice float64   `db:"total_price"`
	Brand      *string   `db:"brand"`
	Reference  *string   `db:"reference"`
	CreatedAt  time.Time `db:"created_at"`
}

// ListParams contains parameters for listing quotes.
type ListParams struct {
	OwnerID   uuid.UUID
	Status    *string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult contains the paginated result of listing quotes.
type ListResult struct {
	Items      []Quote
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ── Repository ────────────────────────────────────────────────────────────────

const (
	quoteNotFoundMsg    = "quote not found"
	subQuoteNotFoundMsg = "sub-quote not found"
	materialNotFoundMsg = "material not found"
)

// querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so the
// same scan helpers serve plain reads and in-transaction reads.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository provides database operations for quotes.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// WithQuoteLock runs fn inside a transaction holding a row lock on the
// quote. Every mutate-then-recompute sequence goes through here: the lock
// serializes concurrent writers per quote, and commit/rollback makes the
// sequence all-or-nothing. A nil ownerID skips the ownership check (used
// by the background worker).
func (r *Repository) WithQuoteLock(ctx context.Context, quoteID uuid.UUID, ownerID *uuid.UUID, fn func(tx pgx.Tx, quote *Quote) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quote, err := r.lockQuote(ctx, tx, quoteID, ownerID)
	if err != nil {
		return err
	}
	if err := fn(tx, quote); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repository) lockQuote(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID, ownerID *uuid.UUID) (*Quote, error) {
	query := quoteSelect + ` WHERE id = $1 FOR UPDATE`
	quote, err := scanQuote(tx.QueryRow(ctx, query, quoteID))
	if err != nil {
		return nil, err
	}
	if ownerID != nil && quote.OwnerID != *ownerID {
		// Hide the quote's existence from non-owners.
		return nil, apperr.NotFound(quoteNotFoundMsg)
	}
	return quote, nil
}

const quoteSelect = `
	SELECT id, owner_id, title, status, room_type, surface_area,
		contact_email, contact_phone, share_token,
		materials_total, labor_total, total_amount, created_at, updated_at
	FROM quotes`

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.OwnerID, &q.Title, &q.Status, &q.RoomType, &q.SurfaceArea,
		&q.ContactEmail, &q.ContactPhone, &q.ShareToken,
		&q.MaterialsTotal, &q.LaborTotal, &q.TotalAmount, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to scan quote: %w", err)
	}
	return &q, nil
}

// CreateQuote inserts a new quote header.
func (r *Repository) CreateQuote(ctx context.Context, quote *Quote) error {
	query := `
		INSERT INTO quotes (
			id, owner_id, title, status, room_type, surface_area,
			contact_email, contact_phone, share_token,
			materials_total, labor_total, total_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	if _, err := r.pool.Exec(ctx, query,
		quote.ID, quote.OwnerID, quote.Title, quote.Status, quote.RoomType,
		quote.SurfaceArea, quote.ContactEmail, quote.ContactPhone, quote.ShareToken,
		quote.MaterialsTotal, quote.LaborTotal, quote.TotalAmount,
		quote.CreatedAt, quote.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// GetQuote retrieves a quote by id scoped to its owner.
func (r *Repository) GetQuote(ctx context.Context, id, ownerID uuid.UUID) (*Quote, error) {
	query := quoteSelect + ` WHERE id = $1 AND owner_id = $2`
	return scanQuote(r.pool.QueryRow(ctx, query, id, ownerID))
}

// GetQuoteByID retrieves a quote without ownership scoping. Reserved for
// the background worker; HTTP paths go through GetQuote.
func (r *Repository) GetQuoteByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return scanQuote(r.pool.QueryRow(ctx, quoteSelect+` WHERE id = $1`, id))
}

// GetQuoteByShareToken retrieves a quote by its public share token.
func (r *Repository) GetQuoteByShareToken(ctx context.Context, token string) (*Quote, error) {
	query := quoteSelect + ` WHERE share_token = $1`
	return scanQuote(r.pool.QueryRow(ctx, query, token))
}

// ListQuotes returns the owner's quotes, filtered, sorted and paginated.
func (r *Repository) ListQuotes(ctx context.Context, params ListParams) (*ListResult, error) {
	where := `WHERE owner_id = $1`
	args := []any{params.OwnerID}
	if params.Status != nil {
		where += ` AND status = $2`
		args = append(args, *params.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	sortBy := "created_at"
	switch params.SortBy {
	case "updated_at", "total_amount", "title":
		sortBy = params.SortBy
	}
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf("%s %s ORDER BY %s %s LIMIT %d OFFSET %d",
		quoteSelect, where, sortBy, sortOrder, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var items []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(
			&q.ID, &q.OwnerID, &q.Title, &q.Status, &q.RoomType, &q.SurfaceArea,
			&q.ContactEmail, &q.ContactPhone, &q.ShareToken,
			&q.MaterialsTotal, &q.LaborTotal, &q.TotalAmount, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// DeleteQuote removes a quote; sub-quotes and materials go with it via
// ON DELETE CASCADE.
func (r *Repository) DeleteQuote(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// UpdateQuoteStatus sets a quote's status inside the caller's transaction.
func (r *Repository) UpdateQuoteStatus(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID, status string) error {
	result, err := tx.Exec(ctx,
		`UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`,
		quoteID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}
