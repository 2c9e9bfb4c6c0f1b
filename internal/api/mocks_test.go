package api_test

import (
	"context"

	"github.com/leasekit/leasekit/internal/models"
)

// mockRequestService implements api.RequestService for testing.
type mockRequestService struct {
	createFn func(ctx context.Context, r *models.LeaseRequest) (*models.LeaseRequest, error)
	getFn    func(ctx context.Context, id int64) (*models.LeaseRequest, error)
	listFn   func(ctx context.Context, q models.ListLeaseRequestsQuery) (*models.LeaseRequestPage, error)
	updateFn func(ctx context.Context, id int64, in models.UpdateLeaseRequestInput) (*models.LeaseRequest, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockRequestService) Create(ctx context.Context, r *models.LeaseRequest) (*models.LeaseRequest, error) {
	return m.createFn(ctx, r)
}

func (m *mockRequestService) Get(ctx context.Context, id int64) (*models.LeaseRequest, error) {
	return m.getFn(ctx, id)
}

func (m *mockRequestService) List(ctx context.Context, q models.ListLeaseRequestsQuery) (*models.LeaseRequestPage, error) {
	return m.listFn(ctx, q)
}

func (m *mockRequestService) UpdateFields(ctx context.Context, id int64, in models.UpdateLeaseRequestInput) (*models.LeaseRequest, error) {
	return m.updateFn(ctx, id, in)
}

func (m *mockRequestService) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

// mockLeaseService implements api.LeaseService for testing.
type mockLeaseService struct {
	createFn       func(ctx context.Context, l *models.Lease) (*models.Lease, error)
	getFn          func(ctx context.Context, id int64) (*models.Lease, error)
	listFn         func(ctx context.Context, q models.ListLeasesQuery) ([]models.Lease, error)
	updateFn       func(ctx context.Context, id int64, in models.UpdateLeaseInput) (*models.Lease, error)
	updateStatusFn func(ctx context.Context, id int64, status models.LeaseStatus) (*models.Lease, error)
	deleteFn       func(ctx context.Context, id int64) (bool, error)
}

func (m *mockLeaseService) Create(ctx context.Context, l *models.Lease) (*models.Lease, error) {
	return m.createFn(ctx, l)
}

func (m *mockLeaseService) Get(ctx context.Context, id int64) (*models.Lease, error) {
	return m.getFn(ctx, id)
}

func (m *mockLeaseService) List(ctx context.Context, q models.ListLeasesQuery) ([]models.Lease, error) {
	return m.listFn(ctx, q)
}

func (m *mockLeaseService) UpdateFields(ctx context.Context, id int64, in models.UpdateLeaseInput) (*models.Lease, error) {
	return m.updateFn(ctx, id, in)
}

func (m *mockLeaseService) UpdateStatus(ctx context.Context, id int64, status models.LeaseStatus) (*models.Lease, error) {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockLeaseService) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

// mockHistoryService implements api.HistoryService for testing.
type mockHistoryService struct {
	getFn func(ctx context.Context, requestID int64) ([]models.LeaseRequestHistory, error)
}

func (m *mockHistoryService) GetRequestHistory(ctx context.Context, requestID int64) ([]models.LeaseRequestHistory, error) {
	return m.getFn(ctx, requestID)
}

// mockCleanupService implements api.CleanupService for testing.
type mockCleanupService struct {
	purgeFn func(ctx context.Context, productID int64) (int, int)
}

func (m *mockCleanupService) PurgeProduct(ctx context.Context, productID int64) (int, int) {
	return m.purgeFn(ctx, productID)
}
