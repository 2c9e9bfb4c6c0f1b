package api

import (
	"context"

	"github.com/leasekit/leasekit/internal/models"
)

// RequestService is the lease request surface consumed by the HTTP handlers.
type RequestService interface {
	Create(ctx context.Context, r *models.LeaseRequest) (*models.LeaseRequest, error)
	Get(ctx context.Context, id int64) (*models.LeaseRequest, error)
	List(ctx context.Context, q models.ListLeaseRequestsQuery) (*models.LeaseRequestPage, error)
	UpdateFields(ctx context.Context, id int64, in models.UpdateLeaseRequestInput) (*models.LeaseRequest, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// LeaseService is the lease record surface consumed by the HTTP handlers.
type LeaseService interface {
	Create(ctx context.Context, l *models.Lease) (*models.Lease, error)
	Get(ctx context.Context, id int64) (*models.Lease, error)
	List(ctx context.Context, q models.ListLeasesQuery) ([]models.Lease, error)
	UpdateFields(ctx context.Context, id int64, in models.UpdateLeaseInput) (*models.Lease, error)
	UpdateStatus(ctx context.Context, id int64, status models.LeaseStatus) (*models.Lease, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// HistoryService reads negotiation history for a lease request.
type HistoryService interface {
	GetRequestHistory(ctx context.Context, requestID int64) ([]models.LeaseRequestHistory, error)
}

// CleanupService removes all rental data tied to a product.
type CleanupService interface {
	PurgeProduct(ctx context.Context, productID int64) (requestsDeleted, leasesDeleted int)
}
