package windmill

import "fmt"

// APIError is a protocol-level failure: the backend answered with a non-2xx
// status. Message carries the backend's error envelope text when one was
// present, otherwise a generic status line. Transport failures (DNS, refused
// connections, canceled contexts) are never wrapped into an APIError.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// NewAPIError builds the error for a failed response, falling back to the
// conventional "Request failed" message when the envelope is absent.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("Request failed: %d", status)
	}
	return &APIError{Status: status, Message: message}
}

// errorEnvelope is the conventional backend error body.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
