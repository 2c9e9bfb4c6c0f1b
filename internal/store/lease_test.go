package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/leasekit/leasekit/internal/models"
	"github.com/leasekit/leasekit/internal/store"
)

func TestCreateAndGetLease(t *testing.T) {
	base, productID := setupTestBase(t)
	ls := store.NewLeaseStore(base)
	ctx := context.Background()

	created, err := ls.CreateLease(ctx, buildLease(t, productID))
	if err != nil {
		t.Fatalf("CreateLease: %v", err)
	}

	if created.ID == 0 {
		t.Error("ID not assigned")
	}
	if created.Status != models.LeaseActive {
		t.Errorf("Status = %q, want active", created.Status)
	}

	got, err := ls.GetLease(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetLease: %v", err)
	}
	if got.CustomerID != 42 {
		t.Errorf("CustomerID = %d, want 42", got.CustomerID)
	}
}

func TestGetLease_NotFound(t *testing.T) {
	base, _ := setupTestBase(t)
	ls := store.NewLeaseStore(base)

	_, err := ls.GetLease(context.Background(), 1<<60)
	if !errors.Is(err, models.ErrLeaseNotFound) {
		t.Fatalf("expected ErrLeaseNotFound, got %v", err)
	}
}

func TestListLeases_NewestFirst(t *testing.T) {
	base, productID := setupTestBase(t)
	ls := store.NewLeaseStore(base)
	ctx := context.Background()

	var lastID int64
	for range 3 {
		created, err := ls.CreateLease(ctx, buildLease(t, productID))
		if err != nil {
			t.Fatalf("CreateLease: %v", err)
		}
		lastID = created.ID
	}

	leases, err := ls.ListLeases(ctx, models.ListLeasesQuery{ProductID: productID})
	if err != nil {
		t.Fatalf("ListLeases: %v", err)
	}

	if len(leases) != 3 {
		t.Fatalf("len = %d, want 3", len(leases))
	}
	if leases[0].ID != lastID {
		t.Errorf("expected newest lease first, got id %d", leases[0].ID)
	}
}

func TestUpdateLeaseFields(t *testing.T) {
	base, productID := setupTestBase(t)
	ls := store.NewLeaseStore(base)
	ctx := context.Background()

	created, err := ls.CreateLease(ctx, buildLease(t, productID))
	if err != nil {
		t.Fatalf("CreateLease: %v", err)
	}

	orderID := int64(900)
	in := models.UpdateLeaseInput{OrderID: &orderID}

	updated, err := ls.UpdateLeaseFields(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("UpdateLeaseFields: %v", err)
	}

	if updated.OrderID == nil || *updated.OrderID != 900 {
		t.Errorf("OrderID = %v, want 900", updated.OrderID)
	}
	if updated.CustomerID != created.CustomerID {
		t.Error("untouched field changed")
	}
	if updated.UpdatedAt == nil {
		t.Error("UpdatedAt not set by update")
	}
}

func TestUpdateLeaseStatus(t *testing.T) {
	base, productID := setupTestBase(t)
	ls := store.NewLeaseStore(base)
	ctx := context.Background()

	created, err := ls.CreateLease(ctx, buildLease(t, productID))
	if err != nil {
		t.Fatalf("CreateLease: %v", err)
	}

	updated, err := ls.UpdateLeaseStatus(ctx, created.ID, models.LeaseCompleted)
	if err != nil {
		t.Fatalf("UpdateLeaseStatus: %v", err)
	}
	if updated.Status != models.LeaseCompleted {
		t.Errorf("Status = %q, want completed", updated.Status)
	}

	if _, err := ls.UpdateLeaseStatus(ctx, created.ID, "expired"); err == nil {
		t.Error("expected error for unknown status")
	}

	if _, err := ls.UpdateLeaseStatus(ctx, 1<<60, models.LeaseCancelled); !errors.Is(err, models.ErrLeaseNotFound) {
		t.Errorf("expected ErrLeaseNotFound, got %v", err)
	}
}

func TestDeleteLeasesByProduct(t *testing.T) {
	base, productID := setupTestBase(t)
	ls := store.NewLeaseStore(base)
	ctx := context.Background()

	for range 2 {
		if _, err := ls.CreateLease(ctx, buildLease(t, productID)); err != nil {
			t.Fatalf("CreateLease: %v", err)
		}
	}

	count, err := ls.DeleteLeasesByProduct(ctx, productID)
	if err != nil {
		t.Fatalf("DeleteLeasesByProduct: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	leases, err := ls.ListLeases(ctx, models.ListLeasesQuery{ProductID: productID})
	if err != nil {
		t.Fatalf("ListLeases: %v", err)
	}
	if len(leases) != 0 {
		t.Errorf("expected no leases left, got %d", len(leases))
	}
}
