package store_test

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/db"
	"github.com/leasekit/leasekit/internal/db/migrations"
	"github.com/leasekit/leasekit/internal/dbpool"
	"github.com/leasekit/leasekit/internal/models"
	"github.com/leasekit/leasekit/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

var productSeq atomic.Int64

// setupTestBase creates a Base plus a product ID unique to this test; rows
// tied to that product are removed after the test.
func setupTestBase(t *testing.T) (store.Base, int64) {
	t.Helper()

	env := getTestEnv(t)
	productID := time.Now().UnixNano() + productSeq.Add(1)

	t.Cleanup(func() {
		cleanCtx := context.Background()
		// History rows cascade with their requests.
		env.pool.Exec(cleanCtx, "DELETE FROM lease_requests WHERE product_id = $1", productID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM leases WHERE product_id = $1", productID)         //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}, productID
}

func buildRequest(t *testing.T, productID int64) *models.LeaseRequest {
	t.Helper()

	r, err := models.NewLeaseRequest(models.CreateLeaseRequestInput{
		ProductID:          productID,
		RequesterID:        7,
		RequestingVendorID: 3,
		StartDate:          "2026-06-01",
		EndDate:            "2026-06-08",
		Quantity:           2,
		TotalPrice:         5000,
		Meta:               map[string]any{"note": "integration"},
	})
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	return r
}

func buildLease(t *testing.T, productID int64) *models.Lease {
	t.Helper()

	l, err := models.NewLease(models.CreateLeaseInput{
		ProductID:  productID,
		CustomerID: 42,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-08",
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("building lease: %v", err)
	}

	return l
}
