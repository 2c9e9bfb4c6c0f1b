package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/leasekit/leasekit/internal/models"
)

// RequestStore handles lease request CRUD operations.
type RequestStore struct {
	Base
}

// NewRequestStore creates a new RequestStore.
func NewRequestStore(base Base) *RequestStore {
	return &RequestStore{Base: base}
}

// CreateRequest inserts a validated request and its (initially empty) history
// row in one transaction, returning the persisted record.
func (s *RequestStore) CreateRequest(ctx context.Context, r *models.LeaseRequest) (*models.LeaseRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating lease request: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	metaJSON, err := encodeMeta(r.Meta)
	if err != nil {
		return nil, fmt.Errorf("preparing request meta: %w", err)
	}

	query := `INSERT INTO lease_requests
		(product_id, variation_id, requester_id, requesting_vendor_id,
		 start_date, end_date, qty, notes, total_price, meta, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		RETURNING ` + requestColumns

	row := tx.QueryRow(ctx, query,
		r.ProductID, r.VariationID, r.RequesterID, r.RequestingVendorID,
		r.StartDate.Time, r.EndDate.Time, r.Quantity, r.Notes, r.TotalPrice,
		metaJSON, string(r.Status),
	)

	created, err := scanRequest(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created lease request: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO lease_request_history (request_id, history, created_at) VALUES ($1, '[]', now())`,
		created.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating request history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create lease request: %w", err)
	}

	return created, nil
}

// GetRequest returns the request with the given id.
func (s *RequestStore) GetRequest(ctx context.Context, id int64) (*models.LeaseRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM lease_requests WHERE id = $1`, id)

	r, err := scanRequest(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRequestNotFound
		}

		return nil, fmt.Errorf("scanning lease request: %w", err)
	}

	return r, nil
}

// buildRequestFilter constructs the WHERE clause and arguments for list queries.
func buildRequestFilter(q models.ListLeaseRequestsQuery) (string, []any) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 4)

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

	if q.RequesterID > 0 {
		add("requester_id = $%d", q.RequesterID)
	}

	if q.RequestingVendorID > 0 {
		add("requesting_vendor_id = $%d", q.RequestingVendorID)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListRequests returns one page of requests matching q, newest first, plus
// the total match count for pagination.
func (s *RequestStore) ListRequests(ctx context.Context, q models.ListLeaseRequestsQuery) (*models.LeaseRequestPage, error) {
	q.Normalize()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	whereSQL, args := buildRequestFilter(q)

	var total int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM lease_requests`+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting lease requests: %w", err)
	}

	listSQL := fmt.Sprintf(
		`SELECT %s FROM lease_requests%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		requestColumns, whereSQL, len(args)+1, len(args)+2,
	)
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)

	rows, err := s.Pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lease requests: %w", err)
	}
	defer rows.Close()

	items, err := collectRequests(rows)
	if err != nil {
		return nil, err
	}

	return &models.LeaseRequestPage{Items: items, Total: total, Page: q.Page, PerPage: q.PerPage}, nil
}

// UpdateRequestFields merges in over the stored record under a row lock,
// re-validates the merged result, and persists only the provided columns
// (plus updated_at, which is always touched). It returns the updated record
// and the pre-change record so callers can snapshot it.
func (s *RequestStore) UpdateRequestFields(
	ctx context.Context,
	id int64,
	in models.UpdateLeaseRequestInput,
) (updated, prior *models.LeaseRequest, err error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("updating lease request: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	row := tx.QueryRow(ctx, `SELECT `+requestColumns+` FROM lease_requests WHERE id = $1 FOR UPDATE`, id)

	prior, err = scanRequest(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, models.ErrRequestNotFound
		}

		return nil, nil, fmt.Errorf("locking lease request: %w", err)
	}

	merged, err := in.Apply(prior)
	if err != nil {
		return nil, nil, err
	}

	setClauses, args, err := buildRequestUpdate(in, merged)
	if err != nil {
		return nil, nil, err
	}

	query := fmt.Sprintf(
		"UPDATE lease_requests SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args)+1, requestColumns,
	)
	args = append(args, id)

	updated, err = scanRequest(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning updated lease request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("committing update lease request: %w", err)
	}

	return updated, prior, nil
}

// buildRequestUpdate constructs SET clauses for the provided fields only.
// updated_at is always included.
func buildRequestUpdate(in models.UpdateLeaseRequestInput, merged *models.LeaseRequest) ([]string, []any, error) {
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

	if in.Quantity != nil {
		set("qty", merged.Quantity)
	}

	if in.Notes != nil {
		set("notes", merged.Notes)
	}

	if in.TotalPrice != nil {
		set("total_price", merged.TotalPrice)
	}

	if in.Meta != nil {
		metaJSON, err := encodeMeta(merged.Meta)
		if err != nil {
			return nil, nil, fmt.Errorf("preparing request meta: %w", err)
		}

		set("meta", metaJSON)
	}

	if in.Status != nil {
		set("status", string(merged.Status))
	}

	if in.RequestingVendorID != nil {
		set("requesting_vendor_id", merged.RequestingVendorID)
	}

	setClauses = append(setClauses, "updated_at = now()")

	return setClauses, args, nil
}

// DeleteRequest removes a request by id. Deleting a missing id is not an
// error; the return value reports whether a row was removed.
func (s *RequestStore) DeleteRequest(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM lease_requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting lease request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteRequestsByProduct bulk-deletes all requests for a product, cascading
// to their history rows in the same transaction. Returns the number of
// requests removed.
func (s *RequestStore) DeleteRequestsByProduct(ctx context.Context, productID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting lease requests by product: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	_, err = tx.Exec(ctx,
		`DELETE FROM lease_request_history
		 WHERE request_id IN (SELECT id FROM lease_requests WHERE product_id = $1)`,
		productID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting request history for product: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM lease_requests WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("executing request delete for product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing delete lease requests: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
