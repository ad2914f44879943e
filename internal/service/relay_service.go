package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akozlov/order-relay/internal/models"
)

var (
	ErrMissingOrderID = errors.New("missing order id")
)

// TransactionForwarder delivers a transaction record downstream.
type TransactionForwarder interface {
	Forward(ctx context.Context, record models.TransactionRecord) ([]byte, error)
}

// RelayResult is the outcome of a successfully forwarded order.
type RelayResult struct {
	OrderID     string
	APIResponse []byte
}

// RelayService maps validated order payloads to transaction records and
// forwards them to the accounting API.
type RelayService struct {
	forwarder TransactionForwarder
	log       *slog.Logger
	now       func() time.Time
}

// NewRelayService creates a relay service.
func NewRelayService(forwarder TransactionForwarder, log *slog.Logger) *RelayService {
	return &RelayService{
		forwarder: forwarder,
		log:       log,
		now:       time.Now,
	}
}

// Relay builds the transaction record for a validated order payload and
// forwards it. The record is only sent when its order id is non-empty;
// otherwise ErrMissingOrderID is returned and no outbound call happens.
func (s *RelayService) Relay(ctx context.Context, payload models.OrderPayload) (*RelayResult, error) {
	record := BuildTransaction(payload, s.now())

	if record.ID == "" {
		return nil, ErrMissingOrderID
	}

	body, err := s.forwarder.Forward(ctx, record)
	if err != nil {
		s.log.Error("failed to forward transaction",
			"order_id", record.ID,
			"error", err,
		)
		return nil, fmt.Errorf("forward transaction %s: %w", record.ID, err)
	}

	s.log.Info("transaction forwarded", "order_id", record.ID, "total", record.Total)

	return &RelayResult{
		OrderID:     record.ID,
		APIResponse: body,
	}, nil
}
