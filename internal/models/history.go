package models

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a full copy of a lease request's field values at a point in
// time, kept for auditing. It is stored JSON-object-shaped so old snapshots
// survive schema evolution.
type Snapshot map[string]any

// SnapshotOf captures r in its wire shape (snake_case keys, minute-precision
// UTC dates).
func SnapshotOf(r *LeaseRequest) (Snapshot, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding request snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding request snapshot: %w", err)
	}

	return snap, nil
}

// LeaseRequestHistory is the append-only snapshot log for one lease request:
// a single row holding an ordered list of prior-state snapshots, oldest first.
type LeaseRequestHistory struct {
	ID        int64      `json:"id"`
	RequestID int64      `json:"request_id"`
	History   []Snapshot `json:"history"`
	CreatedAt Time       `json:"created_at"`
}

// NewLeaseRequestHistory validates and builds an unpersisted history record.
// A nil snapshot list is normalized to an empty one.
func NewLeaseRequestHistory(requestID int64, snapshots []Snapshot) (*LeaseRequestHistory, error) {
	if err := assertPositiveInt(requestID, "request_id"); err != nil {
		return nil, err
	}

	if snapshots == nil {
		snapshots = []Snapshot{}
	}

	if _, err := json.Marshal(snapshots); err != nil {
		return nil, validationErrorf("history", "must be JSON encodable")
	}

	return &LeaseRequestHistory{RequestID: requestID, History: snapshots}, nil
}
