package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrAlreadyMounted = errors.New("task view is already mounted")
	ErrInvalidID      = errors.New("task id must be positive")
	ErrNilForm        = errors.New("form is nil")
	ErrFetchTasks     = errors.New("failed to fetch tasks")
	ErrInsertTask     = errors.New("failed to insert task")
	ErrUpdateTask     = errors.New("failed to update task")
	ErrDeleteTask     = errors.New("failed to delete task")
	ErrSubscribe      = errors.New("failed to subscribe to task changes")
	ErrUnsubscribe    = errors.New("failed to release task change subscription")
)
