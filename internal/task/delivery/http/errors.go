package http

import (
	"errors"
	"net/http"

	"realtime-task-manager/internal/task"
)

var errInvalidID = errors.New("id must be a positive integer")

// httpError is a domain error translated for the client.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

// mapError translates use case errors into HTTP errors. Remote backend
// failures surface as 502 since the request itself was valid.
func (h *handler) mapError(err error) *httpError {
	switch {
	case errors.Is(err, task.ErrInvalidID), errors.Is(err, task.ErrNilForm):
		return &httpError{status: http.StatusBadRequest, msg: err.Error()}
	case errors.Is(err, task.ErrFetchTasks),
		errors.Is(err, task.ErrInsertTask),
		errors.Is(err, task.ErrUpdateTask),
		errors.Is(err, task.ErrDeleteTask):
		return &httpError{status: http.StatusBadGateway, msg: unwrapDomain(err).Error()}
	default:
		return &httpError{status: http.StatusInternalServerError, msg: http.StatusText(http.StatusInternalServerError)}
	}
}

// unwrapDomain keeps the domain sentinel and drops backend details.
func unwrapDomain(err error) error {
	for _, target := range []error{task.ErrFetchTasks, task.ErrInsertTask, task.ErrUpdateTask, task.ErrDeleteTask} {
		if errors.Is(err, target) {
			return target
		}
	}
	return err
}
