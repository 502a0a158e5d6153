package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renoquote_backend/internal/quotes/domain"
	"renoquote_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ── Sub-Quotes ────────────────────────────────────────────────────────────────

const subQuoteSelect = `
	SELECT id, quote_id, work_category, title, labor_hours, labor_rate,
		labor_cost, materials_cost, total_cost, priority, created_at, updated_at
	FROM sub_quotes`

func scanSubQuote(row pgx.Row) (*SubQuote, error) {
	var sq SubQuote
	err := row.Scan(
		&sq.ID, &sq.QuoteID, &sq.WorkCategory, &sq.Title, &sq.LaborHours, &sq.LaborRate,
		&sq.LaborCost, &sq.MaterialsCost, &sq.TotalCost, &sq.Priority, &sq.CreatedAt, &sq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(subQuoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to scan sub-quote: %w", err)
	}
	return &sq, nil
}

func (r *Repository) listSubQuotes(ctx context.Context, db querier, quoteID uuid.UUID) ([]SubQuote, error) {
	rows, err := db.Query(ctx, subQuoteSelect+` WHERE quote_id = $1 ORDER BY priority ASC, created_at ASC`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-quotes: %w", err)
	}
	defer rows.Close()

	var items []SubQuote
	for rows.Next() {
		var sq SubQuote
		if err := rows.Scan(
			&sq.ID, &sq.QuoteID, &sq.WorkCategory, &sq.Title, &sq.LaborHours, &sq.LaborRate,
			&sq.LaborCost, &sq.MaterialsCost, &sq.TotalCost, &sq.Priority, &sq.CreatedAt, &sq.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sub-quote: %w", err)
		}
		items = append(items, sq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-quotes: %w", err)
	}
	return items, nil
}

// ListSubQuotes returns a quote's sub-quotes in priority order.
func (r *Repository) ListSubQuotes(ctx context.Context, quoteID uuid.UUID) ([]SubQuote, error) {
	return r.listSubQuotes(ctx, r.pool, quoteID)
}

// ListSubQuotesTx is ListSubQuotes inside the caller's transaction.
func (r *Repository) ListSubQuotesTx(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID) ([]SubQuote, error) {
	return r.listSubQuotes(ctx, tx, quoteID)
}

// GetSubQuote retrieves one sub-quote of the given quote inside the
// caller's transaction.
func (r *Repository) GetSubQuote(ctx context.Context, tx pgx.Tx, quoteID, subQuoteID uuid.UUID) (*SubQuote, error) {
	return scanSubQuote(tx.QueryRow(ctx, subQuoteSelect+` WHERE id = $1 AND quote_id = $2`, subQuoteID, quoteID))
}

// NextPriority returns max(existing priorities)+1 for a quote.
func (r *Repository) NextPriority(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID) (int, error) {
	var next int
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(priority), 0) + 1 FROM sub_quotes WHERE quote_id = $1`,
		quoteID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next priority: %w", err)
	}
	return next, nil
}

// InsertSubQuote inserts a sub-quote inside the caller's transaction.
func (r *Repository) InsertSubQuote(ctx context.Context, tx pgx.Tx, sq *SubQuote) error {
	query := `
		INSERT INTO sub_quotes (
			id, quote_id, work_category, title, labor_hours, labor_rate,
			labor_cost, materials_cost, total_cost, priority, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := tx.Exec(ctx, query,
		sq.ID, sq.QuoteID, sq.WorkCategory, sq.Title, sq.LaborHours, sq.LaborRate,
		sq.LaborCost, sq.MaterialsCost, sq.TotalCost, sq.Priority, sq.CreatedAt, sq.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert sub-quote: %w", err)
	}
	return nil
}

// UpdateSubQuote persists a fully-merged sub-quote record.
func (r *Repository) UpdateSubQuote(ctx context.Context, tx pgx.Tx, sq *SubQuote) error {
	query := `
		UPDATE sub_quotes SET
			work_category = $2, title = $3, labor_hours = $4, labor_rate = $5,
			labor_cost = $6, materials_cost = $7, total_cost = $8, priority = $9, updated_at = $10
		WHERE id = $1`

	result, err := tx.Exec(ctx, query,
		sq.ID, sq.WorkCategory, sq.Title, sq.LaborHours, sq.LaborRate,
		sq.LaborCost, sq.MaterialsCost, sq.TotalCost, sq.Priority, sq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update sub-quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(subQuoteNotFoundMsg)
	}
	return nil
}

// DeleteSubQuote removes a sub-quote; its materials cascade.
func (r *Repository) DeleteSubQuote(ctx context.Context, tx pgx.Tx, quoteID, subQuoteID uuid.UUID) error {
	result, err := tx.Exec(ctx, `DELETE FROM sub_quotes WHERE id = $1 AND quote_id = $2`, subQuoteID, quoteID)
	if err != nil {
		return fmt.Errorf("failed to delete sub-quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(subQuoteNotFoundMsg)
	}
	return nil
}

// ── Materials ─────────────────────────────────────────────────────────────────

const materialSelect = `
	SELECT id, sub_quote_id, name, quantity, unit, unit_price, total_price,
		brand, reference, created_at
	FROM materials`

func (r *Repository) listMaterials(ctx context.Context, db querier, subQuoteID uuid.UUID) ([]Material, error) {
	rows, err := db.Query(ctx, materialSelect+` WHERE sub_quote_id = $1 ORDER BY created_at ASC`, subQuoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var items []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(
			&m.ID, &m.SubQuoteID, &m.Name, &m.Quantity, &m.Unit, &m.UnitPrice, &m.TotalPrice,
			&m.Brand, &m.Reference, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate materials: %w", err)
	}
	return items, nil
}

// ListMaterials returns a sub-quote's materials.
func (r *Repository) ListMaterials(ctx context.Context, subQuoteID uuid.UUID) ([]Material, error) {
	return r.listMaterials(ctx, r.pool, subQuoteID)
}

// ListMaterialsTx is ListMaterials inside the caller's transaction.
func (r *Repository) ListMaterialsTx(ctx context.Context, tx pgx.Tx, subQuoteID uuid.UUID) ([]Material, error) {
	return r.listMaterials(ctx, tx, subQuoteID)
}

// GetMaterial retrieves one material of the given sub-quote inside the
// caller's transaction.
func (r *Repository) GetMaterial(ctx context.Context, tx pgx.Tx, subQuoteID, materialID uuid.UUID) (*Material, error) {
	var m Material
	err := tx.QueryRow(ctx, materialSelect+` WHERE id = $1 AND sub_quote_id = $2`, materialID, subQuoteID).Scan(
		&m.ID, &m.SubQuoteID, &m.Name, &m.Quantity, &m.Unit, &m.UnitPrice, &m.TotalPrice,
		&m.Brand, &m.Reference, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(materialNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

// InsertMaterial inserts a material inside the caller's transaction.
func (r *Repository) InsertMaterial(ctx context.Context, tx pgx.Tx, m *Material) error {
	query := `
		INSERT INTO materials (
			id, sub_quote_id, name, quantity, unit, unit_price, total_price,
			brand, reference, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := tx.Exec(ctx, query,
		m.ID, m.SubQuoteID, m.Name, m.Quantity, m.Unit, m.UnitPrice, m.TotalPrice,
		m.Brand, m.Reference, m.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert material: %w", err)
	}
	return nil
}

// UpdateMaterial persists a fully-merged material record.
func (r *Repository) UpdateMaterial(ctx context.Context, tx pgx.Tx, m *Material) error {
	query := `
		UPDATE materials SET
			name = $2, quantity = $3, unit = $4, unit_price = $5, total_price = $6,
			brand = $7, reference = $8
		WHERE id = $1`

	result, err := tx.Exec(ctx, query,
		m.ID, m.Name, m.Quantity, m.Unit, m.UnitPrice, m.TotalPrice, m.Brand, m.Reference,
	)
	if err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(materialNotFoundMsg)
	}
	return nil
}

// DeleteMaterial removes a material inside the caller's transaction.
func (r *Repository) DeleteMaterial(ctx context.Context, tx pgx.Tx, subQuoteID, materialID uuid.UUID) error {
	result, err := tx.Exec(ctx, `DELETE FROM materials WHERE id = $1 AND sub_quote_id = $2`, materialID, subQuoteID)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(materialNotFoundMsg)
	}
	return nil
}

// ── Roll-up Recomputation ─────────────────────────────────────────────────────

// RecomputeSubQuoteCosts derives and persists a sub-quote's cost roll-up
// from its current materials and labor fields. It must run in the same
// transaction as the mutation that made the stored roll-up stale.
func (r *Repository) RecomputeSubQuoteCosts(ctx context.Context, tx pgx.Tx, quoteID, subQuoteID uuid.UUID) (domain.SubQuoteCosts, error) {
	sq, err := r.GetSubQuote(ctx, tx, quoteID, subQuoteID)
	if err != nil {
		return domain.SubQuoteCosts{}, err
	}
	materials, err := r.ListMaterialsTx(ctx, tx, subQuoteID)
	if err != nil {
		return domain.SubQuoteCosts{}, err
	}

	totals := make([]float64, len(materials))
	for i, m := range materials {
		totals[i] = m.TotalPrice
	}
	costs := domain.SubQuoteTotals(sq.LaborHours, sq.LaborRate, totals)

	if _, err := tx.Exec(ctx,
		`UPDATE sub_quotes SET labor_cost = $2, materials_cost = $3, total_cost = $4, updated_at = $5 WHERE id = $1`,
		subQuoteID, costs.LaborCost, costs.MaterialsCost, costs.TotalCost, time.Now(),
	); err != nil {
		return domain.SubQuoteCosts{}, fmt.Errorf("failed to persist sub-quote costs: %w", err)
	}
	return costs, nil
}

// RecomputeQuoteTotals derives and persists a quote's totals from its
// current sub-quotes. Derivation from children, never in-place increments,
// keeps the totals drift-free and makes the call idempotent.
func (r *Repository) RecomputeQuoteTotals(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID) (domain.QuoteCosts, error) {
	subQuotes, err := r.ListSubQuotesTx(ctx, tx, quoteID)
	if err != nil {
		return domain.QuoteCosts{}, err
	}

	costs := make([]domain.SubQuoteCosts, len(subQuotes))
	for i, sq := range subQuotes {
		costs[i] = domain.SubQuoteCosts{
			LaborCost:     sq.LaborCost,
			MaterialsCost: sq.MaterialsCost,
			TotalCost:     sq.TotalCost,
		}
	}
	totals := domain.QuoteTotals(costs)

	if _, err := tx.Exec(ctx,
		`UPDATE quotes SET materials_total = $2, labor_total = $3, total_amount = $4, updated_at = $5 WHERE id = $1`,
		quoteID, totals.MaterialsTotal, totals.LaborTotal, totals.TotalAmount, time.Now(),
	); err != nil {
		return domain.QuoteCosts{}, fmt.Errorf("failed to persist quote totals: %w", err)
	}
	return totals, nil
}
