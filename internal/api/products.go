package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProductHandler serves the product rental-data cleanup endpoint.
type ProductHandler struct {
	cleanup CleanupService
	log     *logrus.Logger
}

// NewProductHandler creates a ProductHandler with the given service and logger.
func NewProductHandler(cleanup CleanupService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{cleanup: cleanup, log: log}
}

// PurgeRentalData handles DELETE /api/products/:id/rental-data. It removes
// every lease request (with its history) and lease tied to the product.
// Purge failures are absorbed by the cleanup service, so the response
// always reports the counts that were actually removed.
func (h *ProductHandler) PurgeRentalData(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	requestsDeleted, leasesDeleted := h.cleanup.PurgeProduct(c.Request.Context(), id)

	c.JSON(http.StatusOK, gin.H{
		"product_id":       id,
		"requests_deleted": requestsDeleted,
		"leases_deleted":   leasesDeleted,
	})
}
