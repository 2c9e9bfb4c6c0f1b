package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/leasekit/leasekit/internal/models"
)

// HistoryStore handles lease request snapshot history operations.
type HistoryStore struct {
	Base
}

// NewHistoryStore creates a new HistoryStore.
func NewHistoryStore(base Base) *HistoryStore {
	return &HistoryStore{Base: base}
}

// CreateHistory inserts a history row and returns the persisted record.
func (s *HistoryStore) CreateHistory(ctx context.Context, h *models.LeaseRequestHistory) (*models.LeaseRequestHistory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	snapshots, err := json.Marshal(h.History)
	if err != nil {
		return nil, fmt.Errorf("encoding history snapshots: %w", err)
	}

	row := s.Pool.QueryRow(ctx,
		`INSERT INTO lease_request_history (request_id, history, created_at)
		 VALUES ($1, $2, now()) RETURNING `+historyColumns,
		h.RequestID, snapshots,
	)

	created, err := scanHistory(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created history: %w", err)
	}

	return created, nil
}

// FindHistoryByRequest returns all history rows for a request, newest row
// first. The design keeps a single growing row per request, so the slice
// normally has one element.
func (s *HistoryStore) FindHistoryByRequest(ctx context.Context, requestID int64) ([]models.LeaseRequestHistory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+historyColumns+` FROM lease_request_history WHERE request_id = $1 ORDER BY created_at DESC, id DESC`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying request history: %w", err)
	}
	defer rows.Close()

	records := make([]models.LeaseRequestHistory, 0, 1)

	for rows.Next() {
		h, err := scanHistory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		records = append(records, *h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return records, nil
}

// AppendSnapshot appends snap to the end of the history row's snapshot list.
// The read-append-write runs under a row lock so concurrent status changes
// cannot drop snapshots.
func (s *HistoryStore) AppendSnapshot(ctx context.Context, historyID int64, snap models.Snapshot) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("appending history snapshot: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var raw []byte

	err = tx.QueryRow(ctx, `SELECT history FROM lease_request_history WHERE id = $1 FOR UPDATE`, historyID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrHistoryNotFound
		}

		return fmt.Errorf("locking history row: %w", err)
	}

	var snapshots []models.Snapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return fmt.Errorf("unmarshalling history snapshots: %w", err)
	}

	snapshots = append(snapshots, snap)

	encoded, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("encoding history snapshots: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE lease_request_history SET history = $1 WHERE id = $2`, encoded, historyID); err != nil {
		return fmt.Errorf("updating history row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing history append: %w", err)
	}

	return nil
}

// DeleteHistoryByRequest removes all history rows for a request and returns
// the number removed.
func (s *HistoryStore) DeleteHistoryByRequest(ctx context.Context, requestID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM lease_request_history WHERE request_id = $1`, requestID)
	if err != nil {
		return 0, fmt.Errorf("deleting request history: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
