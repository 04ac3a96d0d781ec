package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTimeout is returned (wrapped) when a request exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrMissingID is returned when a generation response carries no id.
	ErrMissingID = errors.New("response did not include a tutorial id")
	// ErrIncompatibleBackend is returned by CheckHealth when the backend
	// version falls outside the configured constraint.
	ErrIncompatibleBackend = errors.New("incompatible backend version")
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	// Message is the server-supplied reason, empty when the body had none.
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the text the UI should show for err: the server's
// message when one was sent, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorMessage pulls a reason out of an error body. It understands
// {"message": "..."} and FastAPI's {"detail": "..."} as well as the
// validation form {"detail": [{"msg": "..."}]}.
func errorMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if len(payload.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
