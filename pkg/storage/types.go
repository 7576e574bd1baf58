package storage

import "fmt"

// UploadResponse is the body returned after a successful object upload.
type UploadResponse struct {
	Key string `json:"Key"`
	ID  string `json:"Id"`
}

// APIError is the error body returned by the storage API.
type APIError struct {
	Status     int    `json:"-"`
	StatusCode string `json:"statusCode"`
	ErrorName  string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.ErrorName != "" {
		return fmt.Sprintf("storage API error %d (%s): %s", e.Status, e.ErrorName, e.Message)
	}
	return fmt.Sprintf("storage API error %d: %s", e.Status, e.Message)
}
