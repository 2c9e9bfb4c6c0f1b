// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/metrics"
	"github.com/leasekit/leasekit/internal/models"
)

// RequestStore is the data-access interface RequestService depends on.
type RequestStore interface {
	CreateRequest(ctx context.Context, r *models.LeaseRequest) (*models.LeaseRequest, error)
	GetRequest(ctx context.Context, id int64) (*models.LeaseRequest, error)
	ListRequests(ctx context.Context, q models.ListLeaseRequestsQuery) (*models.LeaseRequestPage, error)
	UpdateRequestFields(ctx context.Context, id int64, in models.UpdateLeaseRequestInput) (updated, prior *models.LeaseRequest, err error)
	DeleteRequest(ctx context.Context, id int64) (bool, error)
	DeleteRequestsByProduct(ctx context.Context, productID int64) (int, error)
}

// HistoryWriter is the snapshot sink RequestService appends to.
type HistoryWriter interface {
	CreateHistory(ctx context.Context, h *models.LeaseRequestHistory) (*models.LeaseRequestHistory, error)
	FindHistoryByRequest(ctx context.Context, requestID int64) ([]models.LeaseRequestHistory, error)
	AppendSnapshot(ctx context.Context, historyID int64, snap models.Snapshot) error
}

// RequestService wraps RequestStore with the snapshot-on-status-change side
// effect and audit logging.
type RequestService struct {
	store   RequestStore
	history HistoryWriter
	log     *logrus.Logger
}

// NewRequestService creates a RequestService.
func NewRequestService(store RequestStore, history HistoryWriter, log *logrus.Logger) *RequestService {
	return &RequestService{store: store, history: history, log: log}
}

// Create validates nothing itself — callers pass an already-constructed
// entity — and persists it along with its empty history row.
func (s *RequestService) Create(ctx context.Context, r *models.LeaseRequest) (*models.LeaseRequest, error) {
	created, err := s.store.CreateRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"action":     "request.create",
		"request_id": created.ID,
		"product_id": created.ProductID,
		"status":     created.Status,
	}).Info("audit")

	return created, nil
}

// Get returns a single request by id (pass-through).
func (s *RequestService) Get(ctx context.Context, id int64) (*models.LeaseRequest, error) {
	return s.store.GetRequest(ctx, id)
}

// List returns a filtered page of requests (pass-through).
func (s *RequestService) List(ctx context.Context, q models.ListLeaseRequestsQuery) (*models.LeaseRequestPage, error) {
	return s.store.ListRequests(ctx, q)
}

// UpdateFields applies a partial update. When the update changes the status,
// the pre-change record is appended to the request's history after the
// primary write commits. History is best-effort auditing: an append failure
// is logged and counted but never fails the update.
func (s *RequestService) UpdateFields(ctx context.Context, id int64, in models.UpdateLeaseRequestInput) (*models.LeaseRequest, error) {
	updated, prior, err := s.store.UpdateRequestFields(ctx, id, in)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && updated.Status != prior.Status {
		s.recordSnapshot(ctx, id, prior)
	}

	s.log.WithFields(logrus.Fields{
		"action":     "request.update",
		"request_id": id,
		"status":     updated.Status,
	}).Info("audit")

	return updated, nil
}

// recordSnapshot appends the pre-change record to the request's history,
// creating the history row if one does not exist yet (requests predating
// eager history creation). Failures are suppressed by design.
func (s *RequestService) recordSnapshot(ctx context.Context, requestID int64, prior *models.LeaseRequest) {
	warn := func(err error) {
		metrics.SnapshotFailures.Inc()
		s.log.WithError(err).WithField("request_id", requestID).Warn("request history snapshot failed")
	}

	snap, err := models.SnapshotOf(prior)
	if err != nil {
		warn(err)

		return
	}

	records, err := s.history.FindHistoryByRequest(ctx, requestID)
	if err != nil {
		warn(err)

		return
	}

	if len(records) == 0 {
		h, err := models.NewLeaseRequestHistory(requestID, []models.Snapshot{snap})
		if err == nil {
			_, err = s.history.CreateHistory(ctx, h)
		}

		if err != nil {
			warn(err)
		}

		return
	}

	if err := s.history.AppendSnapshot(ctx, records[0].ID, snap); err != nil {
		warn(err)
	}
}

// Delete removes a request by id; deleting a missing id reports false.
func (s *RequestService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteRequest(ctx, id)
	if err != nil {
		return false, err
	}

	s.log.WithFields(logrus.Fields{
		"action":     "request.delete",
		"request_id": id,
		"deleted":    deleted,
	}).Info("audit")

	return deleted, nil
}
