package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/models"
)

// LeaseStore is the data-access interface LeaseService depends on.
type LeaseStore interface {
	CreateLease(ctx context.Context, l *models.Lease) (*models.Lease, error)
	GetLease(ctx context.Context, id int64) (*models.Lease, error)
	ListLeases(ctx context.Context, q models.ListLeasesQuery) ([]models.Lease, error)
	UpdateLeaseFields(ctx context.Context, id int64, in models.UpdateLeaseInput) (*models.Lease, error)
	UpdateLeaseStatus(ctx context.Context, id int64, status models.LeaseStatus) (*models.Lease, error)
	DeleteLease(ctx context.Context, id int64) (bool, error)
	DeleteLeasesByProduct(ctx context.Context, productID int64) (int, error)
}

// LeaseService wraps LeaseStore with audit logging.
type LeaseService struct {
	store LeaseStore
	log   *logrus.Logger
}

// NewLeaseService creates a LeaseService.
func NewLeaseService(store LeaseStore, log *logrus.Logger) *LeaseService {
	return &LeaseService{store: store, log: log}
}

// Create persists an already-constructed lease.
func (s *LeaseService) Create(ctx context.Context, l *models.Lease) (*models.Lease, error) {
	created, err := s.store.CreateLease(ctx, l)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"action":     "lease.create",
		"lease_id":   created.ID,
		"product_id": created.ProductID,
		"status":     created.Status,
	}).Info("audit")

	return created, nil
}

// Get returns a single lease by id (pass-through).
func (s *LeaseService) Get(ctx context.Context, id int64) (*models.Lease, error) {
	return s.store.GetLease(ctx, id)
}

// List returns leases matching q (pass-through).
func (s *LeaseService) List(ctx context.Context, q models.ListLeasesQuery) ([]models.Lease, error) {
	return s.store.ListLeases(ctx, q)
}

// UpdateFields applies a partial update with full re-validation of the
// merged record.
func (s *LeaseService) UpdateFields(ctx context.Context, id int64, in models.UpdateLeaseInput) (*models.Lease, error) {
	updated, err := s.store.UpdateLeaseFields(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"action":   "lease.update",
		"lease_id": id,
		"status":   updated.Status,
	}).Info("audit")

	return updated, nil
}

// UpdateStatus sets the lease status directly.
func (s *LeaseService) UpdateStatus(ctx context.Context, id int64, status models.LeaseStatus) (*models.Lease, error) {
	updated, err := s.store.UpdateLeaseStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"action":   "lease.update_status",
		"lease_id": id,
		"status":   updated.Status,
	}).Info("audit")

	return updated, nil
}

// Delete removes a lease by id; deleting a missing id reports false.
func (s *LeaseService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteLease(ctx, id)
	if err != nil {
		return false, err
	}

	s.log.WithFields(logrus.Fields{
		"action":   "lease.delete",
		"lease_id": id,
		"deleted":  deleted,
	}).Info("audit")

	return deleted, nil
}
