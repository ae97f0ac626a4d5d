package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorDetail is one structured entry from an upstream failure payload.
type ErrorDetail struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// APIError is the single normalized error type every upstream failure is
// reduced to. Raw transport errors never leave this package.
type APIError struct {
	Message string
	Status  int
	Code    string
	Details []ErrorDetail
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// errorBody matches the upstream failure envelope {message, data, ts}.
type errorBody struct {
	Message string        `json:"message"`
	Data    []ErrorDetail `json:"data"`
	TS      string        `json:"ts"`
}

// nonProdTraceMarker precedes internal trace text the staging backend
// appends to error messages. Everything from the marker on is dropped.
const nonProdTraceMarker = ", Non-Production trace:"

// normalizeError turns an upstream HTTP failure into an APIError. Detail
// descriptions win over the message field; both win over the per-status
// default text.
func normalizeError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: defaultMessage(status)}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if len(parsed.Data) > 0 {
			descs := make([]string, 0, len(parsed.Data))
			for _, d := range parsed.Data {
				descs = append(descs, d.Description)
			}
			apiErr.Message = strings.Join(descs, ". ")
			apiErr.Code = parsed.Data[0].Code
			apiErr.Details = parsed.Data
		} else if parsed.Message != "" {
			msg := parsed.Message
			if i := strings.Index(msg, nonProdTraceMarker); i > -1 {
				msg = msg[:i]
			}
			apiErr.Message = msg
		}
	}
	return apiErr
}

func defaultMessage(status int) string {
	switch status {
	case 400:
		return "Invalid request. Please check your input."
	case 401:
		return "Session expired. Please login again."
	case 403:
		return "You do not have permission to perform this action."
	case 404:
		return "The requested resource was not found."
	case 500:
		return "Server error. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}

// transportError wraps a network-level failure (no HTTP response) into the
// same normalized shape, status 0.
func transportError(err error) *APIError {
	return &APIError{
		Message: "Unable to connect to server. Please check your connection.",
		Details: []ErrorDetail{{Code: "TRANSPORT", Description: err.Error()}},
	}
}
