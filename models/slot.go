package models

// Slot is a candidate appointment start time, derived fresh on every query
// and never persisted. Unavailable slots are included so clients can render
// them disabled.
type Slot struct {
	Time      string `json:"time"` // "HH:MM" wall clock in the company timezone
	Available bool   `json:"available"`
}
