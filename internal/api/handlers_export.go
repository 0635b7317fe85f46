package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"waitlist/internal/models"
	"waitlist/internal/ratelimit"
)

// dateOnly matches the from/to query parameters sent by the admin tooling.
const dateOnly = "2006-01-02"

// Export handles the guarded CSV export
// GET /api/v1/waitlist/export
//
// Guard order: the process-wide cooldown fires before the token check, so a
// token brute force cannot even reach the comparison more than once per
// interval. The 401 is identical for a missing and a wrong token.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	if allowed, info := h.cooldown.Allow(); !allowed {
		retryAfter := info.RetryAfterSeconds()
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		w.Header().Set("Cache-Control", "no-store")
		h.writeJSONResponse(w, http.StatusTooManyRequests, models.NewRateLimitResponse(retryAfter))
		return
	}

	secret := h.config.Security.AdminExportSecret
	if secret == "" {
		h.logger.Error("export requested but no admin export secret is configured")
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrMsgMisconfigured)
		return
	}

	token := r.Header.Get("X-Admin-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token != secret {
		// Presence only, never the value.
		h.logger.Warn("export denied",
			"token_present", token != "",
			"client", ratelimit.ClientKey(r))
		h.writeErrorResponse(w, http.StatusUnauthorized, models.ErrMsgUnauthorized)
		return
	}

	from := parseTimeBound(r.URL.Query().Get("from"), false)
	to := parseTimeBound(r.URL.Query().Get("to"), true)

	entries, err := h.service.Export(r.Context(), from, to)
	if err != nil {
		h.logger.Error("export failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrMsgDatabase)
		return
	}

	filename := fmt.Sprintf("waitlist_%s.csv", time.Now().UTC().Format(dateOnly))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")

	writer := csv.NewWriter(w)
	writer.Write([]string{"id", "email", "created_at"})
	for _, entry := range entries {
		writer.Write([]string{entry.ID, entry.Email, entry.CreatedAt.UTC().Format(time.RFC3339)})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("failed to stream export", "error", err)
		return
	}

	h.logger.Info("export completed",
		"rows", len(entries),
		"client", ratelimit.ClientKey(r))
}

// parseTimeBound parses a from/to query value as either a plain date or a
// full RFC 3339 timestamp. A plain date expands to the start or end of that
// day in UTC so both bounds stay inclusive. Unparseable values are treated
// as absent rather than rejected.
func parseTimeBound(value string, endOfDay bool) *time.Time {
	if value == "" {
		return nil
	}

	if t, err := time.Parse(dateOnly, value); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}

	return nil
}
