package entity

import "time"

// Sign job lifecycle as observed by this gateway.
const (
	JobStatusSubmitted = "SUBMITTED"
	JobStatusCompleted = "COMPLETED"
	JobStatusTimedOut  = "TIMED_OUT"
)

// SignJob tracks one accepted signing submission. CallbackID is BORICA's
// correlation token; RPCallbackID is ours.
type SignJob struct {
	ID           int64     `json:"id"`
	CallbackID   string    `json:"callback_id"`
	RPCallbackID string    `json:"rp_callback_id"`
	Status       string    `json:"status"`
	ContentCount int       `json:"content_count"`
	Validity     string    `json:"validity"`
	Cert         string    `json:"cert,omitempty"`
	ContentRefs  string    `json:"content_refs,omitempty"` // comma-joined signed content references
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
