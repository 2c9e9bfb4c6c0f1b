package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/models"
)

// LeaseHandler serves lease record CRUD endpoints.
type LeaseHandler struct {
	svc LeaseService
	log *logrus.Logger
}

// NewLeaseHandler creates a LeaseHandler with the given service and logger.
func NewLeaseHandler(svc LeaseService, log *logrus.Logger) *LeaseHandler {
	return &LeaseHandler{svc: svc, log: log}
}

// List handles GET /api/leases.
func (h *LeaseHandler) List(c *gin.Context) {
	q := models.ListLeasesQuery{
		Status:     c.Query("status"),
		ProductID:  parseQueryInt64(c.Query("product_id")),
		CustomerID: parseQueryInt64(c.Query("customer_id")),
	}

	leases, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.log.WithError(err).Error("listing leases")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"leases": leases})
}

// Get handles GET /api/leases/:id.
func (h *LeaseHandler) Get(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	lease, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrLeaseNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "lease not found")

			return
		}

		h.log.WithError(err).Error("getting lease")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, lease)
}

// Create handles POST /api/leases.
func (h *LeaseHandler) Create(c *gin.Context) {
	var in models.CreateLeaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	lease, err := models.NewLease(in)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	created, err := h.svc.Create(c.Request.Context(), lease)
	if err != nil {
		h.log.WithError(err).Error("creating lease")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /api/leases/:id.
func (h *LeaseHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var in models.UpdateLeaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if in.IsEmpty() {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "no fields to update")

		return
	}

	if err := in.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	updated, err := h.svc.UpdateFields(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLeaseNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "lease not found")
		case models.IsValidation(err):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("updating lease")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateStatus handles PUT /api/leases/:id/status.
func (h *LeaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var in models.UpdateLeaseStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := in.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), id, models.LeaseStatus(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLeaseNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "lease not found")
		case models.IsValidation(err):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("updating lease status")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/leases/:id.
func (h *LeaseHandler) Delete(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).Error("deleting lease")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
