package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// ErrSessionExpired is returned for requests that failed authentication and
// could not be recovered by a token refresh.
type ErrSessionExpired struct {
	Cause error
}

func (e *ErrSessionExpired) Error() string {
	if e.Cause != nil {
		return "session expired: " + e.Cause.Error()
	}
	return "session expired"
}

func (e *ErrSessionExpired) Unwrap() error { return e.Cause }

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorFromResponse builds an APIError, preferring the server's message and
// falling back to the HTTP status text.
func errorFromResponse(status int, body []byte) *APIError {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return &APIError{StatusCode: status, Code: env.Error.Code, Message: env.Error.Message}
	}
	return &APIError{StatusCode: status, Code: "HTTP_ERROR", Message: http.StatusText(status)}
}
