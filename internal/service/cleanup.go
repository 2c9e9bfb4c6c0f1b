package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// RequestPurger deletes all request data for a product.
type RequestPurger interface {
	DeleteRequestsByProduct(ctx context.Context, productID int64) (int, error)
}

// LeasePurger deletes all lease data for a product.
type LeasePurger interface {
	DeleteLeasesByProduct(ctx context.Context, productID int64) (int, error)
}

// CleanupService removes all rental data for a product that is being deleted
// upstream. Failures here must never block the deletion that triggered the
// cleanup, so errors are logged and swallowed.
type CleanupService struct {
	requests RequestPurger
	leases   LeasePurger
	log      *logrus.Logger
}

// NewCleanupService creates a CleanupService.
func NewCleanupService(requests RequestPurger, leases LeasePurger, log *logrus.Logger) *CleanupService {
	return &CleanupService{requests: requests, leases: leases, log: log}
}

// PurgeProduct deletes lease requests first (their history rows cascade with
// them), then leases, reporting how many of each were removed. A failed step
// contributes zero to its count.
func (s *CleanupService) PurgeProduct(ctx context.Context, productID int64) (requestsDeleted, leasesDeleted int) {
	requestsDeleted, err := s.requests.DeleteRequestsByProduct(ctx, productID)
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).Error("product cleanup: deleting lease requests failed")
	}

	leasesDeleted, err = s.leases.DeleteLeasesByProduct(ctx, productID)
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).Error("product cleanup: deleting leases failed")
	}

	s.log.WithFields(logrus.Fields{
		"action":           "product.cleanup",
		"product_id":       productID,
		"requests_deleted": requestsDeleted,
		"leases_deleted":   leasesDeleted,
	}).Info("audit")

	return requestsDeleted, leasesDeleted
}
