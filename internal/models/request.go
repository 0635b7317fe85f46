// Package models - incoming API request types.
//
// Request bodies are decoded leniently: a malformed JSON body is treated as an
// empty submission rather than a decode error, so the validation rules (not
// the JSON parser) decide what the client sees. Scripted submitters get the
// same responses as browsers either way.
package models

// SubmitRequest is the body of POST /api/v1/waitlist.
//
// The honeypot field is named "website" in the public form; "hp" is accepted
// as an alternate name so the form can rotate field names without a server
// deploy. Neither is ever rendered to a sighted user.
type SubmitRequest struct {
	Email        string `json:"email"`
	Website      string `json:"website,omitempty"`
	HP           string `json:"hp,omitempty"`
	StartedAt    *int64 `json:"startedAt,omitempty"`
	CaptchaToken string `json:"captchaToken,omitempty"`
}

// Honeypot returns the effective honeypot value regardless of which field
// name the form used.
func (r *SubmitRequest) Honeypot() string {
	if r.Website != "" {
		return r.Website
	}
	return r.HP
}

// Attempt converts the wire request into the pipeline's internal view.
func (r *SubmitRequest) Attempt() SubmissionAttempt {
	return SubmissionAttempt{
		Email:        r.Email,
		Honeypot:     r.Honeypot(),
		StartedAt:    r.StartedAt,
		CaptchaToken: r.CaptchaToken,
	}
}

// NotifyRequest is the body of the internal POST /api/v1/notify route.
type NotifyRequest struct {
	Email string `json:"email"`
}
