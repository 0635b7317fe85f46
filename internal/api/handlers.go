package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"waitlist/internal/emailaddr"
	"waitlist/internal/models"
	"waitlist/internal/notify"
	"waitlist/internal/ratelimit"
	"waitlist/internal/storage"
	"waitlist/internal/version"
	"waitlist/internal/waitlist"
)

// Handlers contains HTTP handlers for the waitlist API
type Handlers struct {
	service  waitlist.ServiceInterface
	store    storage.Storage
	sender   notify.Sender
	cooldown *ratelimit.Cooldown
	config   *models.Config
	logger   *slog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	service waitlist.ServiceInterface,
	store storage.Storage,
	sender notify.Sender,
	cooldown *ratelimit.Cooldown,
	config *models.Config,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		service:  service,
		store:    store,
		sender:   sender,
		cooldown: cooldown,
		config:   config,
		logger:   logger,
	}
}

// Submit handles waitlist signups
// POST /api/v1/waitlist
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	// Lenient decode: a malformed body becomes an empty submission and falls
	// through to validation, so the JSON parser never shapes the response.
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = models.SubmitRequest{}
	}

	result, err := h.service.Submit(r.Context(), req.Attempt())
	if err != nil {
		if errors.Is(err, waitlist.ErrInvalidEmail) {
			h.writeErrorResponse(w, http.StatusBadRequest, models.ErrMsgValidEmailRequired)
			return
		}
		h.logger.Error("submission failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrMsgDatabase)
		return
	}

	// Tripped heuristics get an empty success, indistinguishable in shape
	// from a slow network. No body, no hint.
	if result.Discarded {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.SubmitResponse{
		Success:       true,
		AlreadyOnList: result.AlreadyOnList,
	})
}

// Count handles the public signup counter
// GET /api/v1/waitlist/count
func (h *Handlers) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.Error("count failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrMsgDatabase)
		return
	}

	// The counter is social proof, not an account balance; a stale value is
	// fine and saves the datastore from landing-page traffic.
	w.Header().Set("Cache-Control", "public, max-age=60, s-maxage=60, stale-while-revalidate=30")
	h.writeJSONResponse(w, http.StatusOK, models.CountResponse{Count: count})
}

// Notify handles direct notification requests from internal tooling
// POST /api/v1/notify
//
// Always responds 200; delivery outcomes are encoded in the body so a flaky
// mail host never destabilizes the caller.
func (h *Handlers) Notify(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = models.NotifyRequest{}
	}

	email := emailaddr.Normalize(req.Email)
	if !emailaddr.Valid(email) {
		h.writeJSONResponse(w, http.StatusOK, models.NotifyResponse{
			Sent:   false,
			Reason: models.NotifyReasonBadRequest,
		})
		return
	}

	if h.sender == nil || !h.sender.Configured() {
		h.writeJSONResponse(w, http.StatusOK, models.NotifyResponse{
			Sent:   false,
			Reason: models.NotifyReasonNotConfigured,
		})
		return
	}

	receipt, err := h.sender.Send(r.Context(), email)
	if err != nil {
		h.logger.Error("notification send failed", "error", err)
		h.writeJSONResponse(w, http.StatusOK, models.NotifyResponse{
			Sent:     false,
			Reason:   models.NotifyReasonSendFailed,
			Rejected: []string{email},
		})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.NotifyResponse{
		Sent:      true,
		MessageID: receipt.MessageID,
		Accepted:  receipt.Accepted,
	})
}

// HealthCheck handles health check requests
// GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.NewHealthCheckResponse(models.StatusHealthy)
	response.Version = version.GetInfo().Version

	if _, err := h.store.Count(r.Context()); err != nil {
		response.Status = models.StatusDegraded
		response.AddComponent("storage", models.StatusUnhealthy, err.Error())
	} else {
		response.AddComponent("storage", models.StatusHealthy, "Storage is operational")
	}

	if h.sender != nil && h.sender.Configured() {
		response.AddComponent("notifier", models.StatusHealthy, "SMTP is configured")
	} else {
		response.AddComponent("notifier", models.StatusHealthy, "SMTP not configured, notifications disabled")
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// writeJSONResponse writes a JSON response
func (h *Handlers) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; log and move on.
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

// writeErrorResponse writes an error response
func (h *Handlers) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSONResponse(w, statusCode, models.NewErrorResponse(message))
}
