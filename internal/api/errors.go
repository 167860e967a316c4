package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// parseError extracts "message" or "error" from a failed response body.
func parseError(status int, body []byte) *Error {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
		Detail  any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, v := range []any{payload.Message, payload.Error, payload.Detail} {
			if s := messageText(v); s != "" {
				return &Error{StatusCode: status, Message: s}
			}
		}
	}
	return &Error{StatusCode: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

func messageText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// UserMessage renders err the way the client shows it inline.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrUnreachable) {
		return "Server not reachable. Is the backend running?"
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
