package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkErrorMessage is shown when the request never produced an HTTP response
const NetworkErrorMessage = "Network error, please check your connection"

// APIError is an HTTP failure returned by the backend
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps transport failures and timeouts
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return NetworkErrorMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is an HTTP 401 from the backend
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is an HTTP 404 from the backend
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorBody covers the error shapes the backend emits:
// {"message": "..."}, {"detail": "..."} and {"detail": [{"msg": "..."}]}
type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// extractMessage returns the backend-provided message or a generic fallback
func extractMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if msg := strings.TrimSpace(eb.Message); msg != "" {
			return msg
		}
		if len(eb.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(eb.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
				return strings.TrimSpace(detail)
			}
			var items []detailItem
			if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
				return items[0].Msg
			}
		}
	}
	return fmt.Sprintf("Request failed with status %d", status)
}
