package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/leasekit/leasekit/internal/models"
)

// HistoryService exposes the read side of request history.
type HistoryService struct {
	store HistoryWriter
	log   *logrus.Logger
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(store HistoryWriter, log *logrus.Logger) *HistoryService {
	return &HistoryService{store: store, log: log}
}

// GetRequestHistory returns the ordered snapshot records for a request,
// newest row first (normally a single row whose snapshot list grows).
func (s *HistoryService) GetRequestHistory(ctx context.Context, requestID int64) ([]models.LeaseRequestHistory, error) {
	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Debug("history.get_request_history")

	return s.store.FindHistoryByRequest(ctx, requestID)
}
