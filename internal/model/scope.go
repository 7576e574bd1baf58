package model

// Scope identifies the session owner on whose behalf operations run.
// The session itself is acquired outside this service.
type Scope struct {
	UserID string
	Email  string
}
