package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/leasekit/leasekit/internal/models"
)

// LeaseStore handles lease CRUD operations.
type LeaseStore struct {
	Base
}

// NewLeaseStore creates a new LeaseStore.
func NewLeaseStore(base Base) *LeaseStore {
	return &LeaseStore{Base: base}
}

// CreateLease inserts a validated lease and returns the persisted record.
func (s *LeaseStore) CreateLease(ctx context.Context, l *models.Lease) (*models.Lease, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	metaJSON, err := encodeMeta(l.Meta)
	if err != nil {
		return nil, fmt.Errorf("preparing lease meta: %w", err)
	}

	query := `INSERT INTO leases
		(product_id, variation_id, order_id, order_item_id, customer_id, request_id,
		 start_date, end_date, qty, meta, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		RETURNING ` + leaseColumns

	row := s.Pool.QueryRow(ctx, query,
		l.ProductID, l.VariationID, l.OrderID, l.OrderItemID, l.CustomerID, l.RequestID,
		l.StartDate.Time, l.EndDate.Time, l.Quantity, metaJSON, string(l.Status),
	)

	created, err := scanLease(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created lease: %w", err)
	}

	return created, nil
}

// GetLease returns the lease with the given id.
func (s *LeaseStore) GetLease(ctx context.Context, id int64) (*models.Lease, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+leaseColumns+` FROM leases WHERE id = $1`, id)

	l, err := scanLease(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrLeaseNotFound
		}

		return nil, fmt.Errorf("scanning lease: %w", err)
	}

	return l, nil
}

// ListLeases returns leases matching q, newest first, capped at
// models.MaxLeaseListResults. Lease listings carry no pagination metadata.
func (s *LeaseStore) ListLeases(ctx context.Context, q models.ListLeasesQuery) ([]models.Lease, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if q.Status != "" {
		add("status = $%d", q.Status)
	}

	if q.ProductID > 0 {
		add("product_id = $%d", q.ProductID)
	}

	if q.CustomerID > 0 {
		add("customer_id = $%d", q.CustomerID)
	}

	whereSQL := ""
	if len(clauses) > 0 {
		whereSQL = " WHERE " + strings.Join(clauses, " AND ")
	}

	query := fmt.Sprintf(
		`SELECT %s FROM leases%s ORDER BY created_at DESC, id DESC LIMIT %d`,
		leaseColumns, whereSQL, models.MaxLeaseListResults,
	)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying leases: %w", err)
	}
	defer rows.Close()

	return collectLeases(rows)
}

// UpdateLeaseFields merges in over the stored lease under a row lock,
// re-validates the merged result, and persists only the provided columns
// plus updated_at.
func (s *LeaseStore) UpdateLeaseFields(ctx context.Context, id int64, in models.UpdateLeaseInput) (*models.Lease, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating lease: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	row := tx.QueryRow(ctx, `SELECT `+leaseColumns+` FROM leases WHERE id = $1 FOR UPDATE`, id)

	existing, err := scanLease(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrLeaseNotFound
		}

		return nil, fmt.Errorf("locking lease: %w", err)
	}

	merged, err := in.Apply(existing)
	if err != nil {
		return nil, err
	}

	setClauses, args, err := buildLeaseUpdate(in, merged)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"UPDATE leases SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args)+1, leaseColumns,
	)
	args = append(args, id)

	updated, err := scanLease(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning updated lease: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update lease: %w", err)
	}

	return updated, nil
}

// buildLeaseUpdate constructs SET clauses for the provided fields only.
// updated_at is always included.
func buildLeaseUpdate(in models.UpdateLeaseInput, merged *models.Lease) ([]string, []any, error) {
	setClauses := make([]string, 0, 10)
	args := make([]any, 0, 10)

	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if in.StartDate != nil {
		set("start_date", merged.StartDate.Time)
	}

	if in.EndDate != nil {
		set("end_date", merged.EndDate.Time)
	}

	if in.VariationID != nil {
		set("variation_id", merged.VariationID)
	}

	if in.OrderID != nil {
		set("order_id", merged.OrderID)
	}

	if in.OrderItemID != nil {
		set("order_item_id", merged.OrderItemID)
	}

	if in.RequestID != nil {
		set("request_id", merged.RequestID)
	}

	if in.Quantity != nil {
		set("qty", merged.Quantity)
	}

	if in.Meta != nil {
		metaJSON, err := encodeMeta(merged.Meta)
		if err != nil {
			return nil, nil, fmt.Errorf("preparing lease meta: %w", err)
		}

		set("meta", metaJSON)
	}

	if in.Status != nil {
		set("status", string(merged.Status))
	}

	setClauses = append(setClauses, "updated_at = now()")

	return setClauses, args, nil
}

// UpdateLeaseStatus sets the lease status directly and touches updated_at.
// Enum membership is checked; no transition graph is enforced.
func (s *LeaseStore) UpdateLeaseStatus(ctx context.Context, id int64, status models.LeaseStatus) (*models.Lease, error) {
	if !status.Valid() {
		return nil, &models.ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", string(status))}
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`UPDATE leases SET status = $1, updated_at = now() WHERE id = $2 RETURNING `+leaseColumns,
		string(status), id,
	)

	updated, err := scanLease(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrLeaseNotFound
		}

		return nil, fmt.Errorf("scanning lease after status update: %w", err)
	}

	return updated, nil
}

// DeleteLease removes a lease by id. Deleting a missing id is not an error;
// the return value reports whether a row was removed.
func (s *LeaseStore) DeleteLease(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM leases WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting lease: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteLeasesByProduct bulk-deletes all leases for a product and returns the
// number removed.
func (s *LeaseStore) DeleteLeasesByProduct(ctx context.Context, productID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM leases WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("deleting leases by product: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
