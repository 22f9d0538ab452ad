// Package models defines subscription submission records.
package models

import "time"

// Known source tags. Unknown tags are recorded as-is and routed by prefix.
const (
	SourceSignalPage     = "signal-page"
	SourceSignalHomepage = "signal-homepage"
	SourceOSWaitlist     = "os-waitlist"
	SourceOSHomepage     = "os-homepage"
)

// Submission is the operational record of an accepted subscribe call. It is
// written before any provider forwarding happens and regardless of the
// forwarding outcome.
type Submission struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	ListID    string    `json:"list_id"`
	CreatedAt time.Time `json:"created_at"`
}
