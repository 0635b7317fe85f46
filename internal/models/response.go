// Package models - API response types.
//
// Response bodies are part of the public contract and are deliberately small.
// Error responses carry a single "error" message (plus a retry hint for 429s);
// datastore and configuration failures collapse to generic messages so the
// client learns nothing about schema or infrastructure.
package models

import "time"

// SubmitResponse is the success body of POST /api/v1/waitlist.
// AlreadyOnList is true when the normalized email was present before this
// request; resubmissions are friendly no-ops, never errors.
type SubmitResponse struct {
	Success       bool `json:"success"`
	AlreadyOnList bool `json:"alreadyOnList"`
}

// CountResponse is the body of GET /api/v1/waitlist/count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// NotifyResponse is the body of POST /api/v1/notify. The route always
// responds 200; delivery failures are encoded here instead of in the status
// so a flaky mail host never destabilizes the caller.
type NotifyResponse struct {
	Sent      bool     `json:"sent"`
	Reason    string   `json:"reason,omitempty"`
	MessageID string   `json:"messageId,omitempty"`
	Accepted  []string `json:"accepted,omitempty"`
	Rejected  []string `json:"rejected,omitempty"`
}

// Notify failure reasons.
const (
	NotifyReasonNotConfigured = "smtp_not_configured"
	NotifyReasonSendFailed    = "smtp_send_failed"
	NotifyReasonBadRequest    = "invalid_email"
)

// ErrorResponse is the uniform error body for every non-2xx JSON response.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"` // seconds, 429 only
}

// Client-facing error messages. Fixed strings: the export guard in particular
// must not reveal whether the token was absent or wrong, and datastore
// messages must not leak detail.
const (
	ErrMsgValidEmailRequired = "Valid email required"
	ErrMsgTooManyRequests    = "Too many requests"
	ErrMsgUnauthorized       = "Unauthorized"
	ErrMsgMisconfigured      = "Server misconfigured"
	ErrMsgDatabase           = "Database error"
	ErrMsgServer             = "Server error"
)

// NewErrorResponse builds a plain error body.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// NewRateLimitResponse builds the 429 body with its retry hint in seconds.
func NewRateLimitResponse(retryAfterSeconds int) *ErrorResponse {
	return &ErrorResponse{Error: ErrMsgTooManyRequests, RetryAfter: retryAfterSeconds}
}

// HealthCheckResponse reports service liveness plus per-component status.
type HealthCheckResponse struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth is the status of a single dependency (storage, notifier).
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health status constants.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// NewHealthCheckResponse creates a health response with an empty component map.
func NewHealthCheckResponse(status string) *HealthCheckResponse {
	return &HealthCheckResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}
}

// AddComponent records the health of a named dependency.
func (h *HealthCheckResponse) AddComponent(name, status, message string) {
	h.Components[name] = ComponentHealth{Status: status, Message: message}
}
