package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/akozlov/order-relay/internal/models"
	"github.com/akozlov/order-relay/internal/service"
	"github.com/akozlov/order-relay/internal/validator"
)

// relayer forwards a validated order payload downstream.
type relayer interface {
	Relay(ctx context.Context, payload models.OrderPayload) (*service.RelayResult, error)
}

// WebhookHandler handles POST /webhook order notifications.
type WebhookHandler struct {
	relay       relayer
	log         *slog.Logger
	devMode     bool
	logPayloads bool
}

// NewWebhookHandler creates a new webhook handler. devMode controls whether
// error details leak into 500 responses; logPayloads enables raw payload
// logging and is honored in development mode only.
func NewWebhookHandler(relay relayer, log *slog.Logger, devMode, logPayloads bool) *WebhookHandler {
	return &WebhookHandler{
		relay:       relay,
		log:         log,
		devMode:     devMode,
		logPayloads: logPayloads,
	}
}

// HandleOrder handles POST /webhook
func (h *WebhookHandler) HandleOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.log.Warn("rejected oversized webhook body", "limit_bytes", maxErr.Limit)
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Invalid request data",
				"details": []string{"body: request body too large"},
			})
			return
		}

		h.log.Error("failed to read webhook body", "error", err)
		h.writeInternalError(w, "Failed to read request body", err)
		return
	}

	// Raw payloads carry emails and payment data, so they are only ever
	// logged when explicitly enabled, and never outside development.
	if h.devMode && h.logPayloads {
		h.log.Debug("incoming webhook payload", "payload", string(body))
	}

	result, details := validator.Validate(body)
	if details != nil {
		h.log.Warn("webhook payload failed validation", "details", details)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid request data",
			"details": details,
		})
		return
	}

	if result.Kind == validator.KindProbe {
		h.log.Info("received test probe")
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "test",
			"message": "Test data received successfully",
		})
		return
	}

	res, err := h.relay.Relay(r.Context(), result.Payload)
	if err != nil {
		if errors.Is(err, service.ErrMissingOrderID) {
			h.log.Warn("order payload has no order id")
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "Invalid order data",
				"message": "Missing order ID",
			})
			return
		}

		h.log.Error("failed to relay order", "error", err)
		h.writeInternalError(w, "Failed to forward order", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"message":     "Order forwarded successfully",
		"orderId":     res.OrderID,
		"apiResponse": decodeAPIResponse(res.APIResponse),
	})
}

// writeInternalError writes the generic 500 body; the underlying error is
// exposed as details only in development mode.
func (h *WebhookHandler) writeInternalError(w http.ResponseWriter, message string, err error) {
	response := map[string]interface{}{
		"status":  "error",
		"error":   "Internal server error",
		"message": message,
	}
	if h.devMode && err != nil {
		response["details"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, response)
}

// decodeAPIResponse passes the downstream body through as raw JSON when it
// parses, and as a plain string otherwise.
func decodeAPIResponse(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
