package http

import (
	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/pkg/log"
)

type handler struct {
	l     log.Logger
	uc    task.UseCase
	scope model.Scope
}

// New creates the HTTP handler for the task domain. Tasks created through it
// are owned by sc, the externally supplied session.
func New(l log.Logger, uc task.UseCase, sc model.Scope) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		scope: sc,
	}
}
