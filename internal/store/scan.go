package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/leasekit/leasekit/internal/models"
)

// requestColumns lists the columns selected for lease request queries.
const requestColumns = `id, product_id, variation_id, requester_id, requesting_vendor_id,
	start_date, end_date, qty, notes, total_price, meta, status, created_at, updated_at`

// leaseColumns lists the columns selected for lease queries.
const leaseColumns = `id, product_id, variation_id, order_id, order_item_id, customer_id,
	request_id, start_date, end_date, qty, meta, status, created_at, updated_at`

// historyColumns lists the columns selected for history queries.
const historyColumns = `id, request_id, history, created_at`

// scanRequest scans a single row into a models.LeaseRequest.
func scanRequest(scan func(dest ...any) error) (*models.LeaseRequest, error) {
	var r models.LeaseRequest
	var meta []byte
	var status string
	var start, end, created time.Time
	var updated *time.Time

	err := scan(
		&r.ID,
		&r.ProductID,
		&r.VariationID,
		&r.RequesterID,
		&r.RequestingVendorID,
		&start,
		&end,
		&r.Quantity,
		&r.Notes,
		&r.TotalPrice,
		&meta,
		&status,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	r.StartDate = models.NewTime(start)
	r.EndDate = models.NewTime(end)
	r.CreatedAt = models.NewTime(created)
	r.Status = models.RequestStatus(status)

	if updated != nil {
		u := models.NewTime(*updated)
		r.UpdatedAt = &u
	}

	if err := json.Unmarshal(meta, &r.Meta); err != nil {
		return nil, fmt.Errorf("unmarshalling request meta: %w", err)
	}

	return &r, nil
}

// scanLease scans a single row into a models.Lease.
func scanLease(scan func(dest ...any) error) (*models.Lease, error) {
	var l models.Lease
	var meta []byte
	var status string
	var start, end, created time.Time
	var updated *time.Time

	err := scan(
		&l.ID,
		&l.ProductID,
		&l.VariationID,
		&l.OrderID,
		&l.OrderItemID,
		&l.CustomerID,
		&l.RequestID,
		&start,
		&end,
		&l.Quantity,
		&meta,
		&status,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	l.StartDate = models.NewTime(start)
	l.EndDate = models.NewTime(end)
	l.CreatedAt = models.NewTime(created)
	l.Status = models.LeaseStatus(status)

	if updated != nil {
		u := models.NewTime(*updated)
		l.UpdatedAt = &u
	}

	if err := json.Unmarshal(meta, &l.Meta); err != nil {
		return nil, fmt.Errorf("unmarshalling lease meta: %w", err)
	}

	return &l, nil
}

// scanHistory scans a single row into a models.LeaseRequestHistory.
func scanHistory(scan func(dest ...any) error) (*models.LeaseRequestHistory, error) {
	var h models.LeaseRequestHistory
	var snapshots []byte
	var created time.Time

	if err := scan(&h.ID, &h.RequestID, &snapshots, &created); err != nil {
		return nil, err
	}

	h.CreatedAt = models.NewTime(created)

	if err := json.Unmarshal(snapshots, &h.History); err != nil {
		return nil, fmt.Errorf("unmarshalling history snapshots: %w", err)
	}

	if h.History == nil {
		h.History = []models.Snapshot{}
	}

	return &h, nil
}

// collectRequests scans all rows into a request slice.
func collectRequests(rows pgx.Rows) ([]models.LeaseRequest, error) {
	requests := make([]models.LeaseRequest, 0, 16)

	for rows.Next() {
		r, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning request row: %w", err)
		}

		requests = append(requests, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating request rows: %w", err)
	}

	return requests, nil
}

// collectLeases scans all rows into a lease slice.
func collectLeases(rows pgx.Rows) ([]models.Lease, error) {
	leases := make([]models.Lease, 0, 16)

	for rows.Next() {
		l, err := scanLease(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning lease row: %w", err)
		}

		leases = append(leases, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lease rows: %w", err)
	}

	return leases, nil
}

// encodeMeta serializes a meta map for storage, defaulting to an empty object.
func encodeMeta(meta map[string]any) ([]byte, error) {
	if meta == nil {
		meta = map[string]any{}
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding meta: %w", err)
	}

	return data, nil
}
