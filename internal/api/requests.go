package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/models"
)

// RequestHandler serves lease request CRUD and history endpoints.
type RequestHandler struct {
	svc     RequestService
	history HistoryService
	log     *logrus.Logger
}

// NewRequestHandler creates a RequestHandler with the given services and logger.
func NewRequestHandler(svc RequestService, history HistoryService, log *logrus.Logger) *RequestHandler {
	return &RequestHandler{svc: svc, history: history, log: log}
}

// List handles GET /api/requests.
func (h *RequestHandler) List(c *gin.Context) {
	q := models.ListLeaseRequestsQuery{
		Status:             c.Query("status"),
		ProductID:          parseQueryInt64(c.Query("product_id")),
		RequesterID:        parseQueryInt64(c.Query("requester_id")),
		RequestingVendorID: parseQueryInt64(c.Query("requesting_vendor_id")),
		Page:               parseQueryInt(c.Query("page")),
		PerPage:            parseQueryInt(c.Query("per_page")),
	}

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.log.WithError(err).Error("listing lease requests")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	req, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRequestNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "lease request not found")

			return
		}

		h.log.WithError(err).Error("getting lease request")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, req)
}

// Create handles POST /api/requests.
func (h *RequestHandler) Create(c *gin.Context) {
	var in models.CreateLeaseRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	req, err := models.NewLeaseRequest(in)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.log.WithError(err).Error("creating lease request")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /api/requests/:id. Only the fields present in the
// body are applied; everything else keeps its stored value.
func (h *RequestHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var in models.UpdateLeaseRequestInput
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
		case errors.Is(err, models.ErrRequestNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "lease request not found")
		case models.IsValidation(err):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("updating lease request")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/requests/:id. Deleting a missing request is
// not an error; the response reports whether a row was removed.
func (h *RequestHandler) Delete(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).Error("deleting lease request")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// History handles GET /api/requests/:id/history.
func (h *RequestHandler) History(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	records, err := h.history.GetRequestHistory(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).Error("getting lease request history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
