package models

import "time"

// UserState is one row of the user_states table: the whole per-user document
// serialized as JSONB plus its optimistic version.
type UserState struct {
	UserID    string    `json:"userID"`   // Primary Key
	Document  []byte    `json:"document"` // JSONB
	Version   int64     `json:"version"`  // incremented on every successful write
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
