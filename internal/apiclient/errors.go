package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const FallbackMessage = "An unexpected error occurred"

// Error is a response the server answered with a non-2xx status.
type Error struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

func newError(status int, body []byte) *Error {
	return &Error{
		StatusCode: status,
		Message:    bodyMessage(body),
		Body:       body,
	}
}

// bodyMessage pulls a human message out of an error body, preferring
// "message" over "error".
func bodyMessage(body []byte) string {
	var fields struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	if msg := rawString(fields.Message); msg != "" {
		return msg
	}
	return rawString(fields.Error)
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	// Some handlers nest {"error": {"message": "..."}}.
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

// ToMessage turns any failure into the text shown to the operator: a message
// the server put in the body, else the transport error text, else a generic
// fallback. It never panics, including on a nil error.
func ToMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = FallbackMessage
		}
	}()

	if err == nil {
		return FallbackMessage
	}

	var msgErr *MessageError
	if errors.As(err, &msgErr) && msgErr.Message != "" {
		return msgErr.Message
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if text := strings.TrimSpace(err.Error()); text != "" {
		return text
	}
	return FallbackMessage
}

// MessageError is the single descriptive error the services hand back. Its
// text is ToMessage of the underlying failure.
type MessageError struct {
	Message string
	Err     error
}

func (e *MessageError) Error() string { return e.Message }

func (e *MessageError) Unwrap() error { return e.Err }

func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var msgErr *MessageError
	if errors.As(err, &msgErr) {
		return err
	}
	return &MessageError{Message: ToMessage(err), Err: err}
}

// StatusCode returns the HTTP status behind err, or 0 when the request never
// got a response.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
