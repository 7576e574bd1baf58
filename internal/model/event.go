package model

import "time"

// ChangeType is the row-level mutation kind delivered by the push channel.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent is a remote mutation notification for the tasks table.
// New is populated for INSERT and UPDATE, Old carries at least the id for DELETE.
type ChangeEvent struct {
	Type            ChangeType
	New             Task
	Old             Task
	CommitTimestamp time.Time
}
