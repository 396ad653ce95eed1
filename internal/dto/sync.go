package dto

import "time"

// SyncRequest bounds a bank synchronization. A zero Since fetches from the start of
// the current year.
type SyncRequest struct {
	Since time.Time `json:"since"`
}
