package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/leasekit/leasekit/internal/api"
)

func newProductRouter(svc *mockCleanupService) *gin.Engine {
	r := gin.New()
	h := api.NewProductHandler(svc, testLogger())
	r.DELETE("/products/:id/rental-data", h.PurgeRentalData)

	return r
}

func TestProductPurge(t *testing.T) {
	t.Parallel()

	svc := &mockCleanupService{
		purgeFn: func(_ context.Context, productID int64) (int, int) {
			if productID != 10 {
				t.Errorf("expected product 10, got %d", productID)
			}

			return 3, 2
		},
	}

	w := doRequest(newProductRouter(svc), http.MethodDelete, "/products/10/rental-data", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["requests_deleted"] != float64(3) || body["leases_deleted"] != float64(2) {
		t.Errorf("unexpected counts: %v", body)
	}
}

func TestProductPurge_BadID(t *testing.T) {
	t.Parallel()

	w := doRequest(newProductRouter(&mockCleanupService{}), http.MethodDelete, "/products/zero/rental-data", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
