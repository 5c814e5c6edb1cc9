package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// errorBody is the optional payload the backend returns with a failure.
type errorBody struct {
	Msg string `json:"msg"`
}

// ErrAuthentication represents a 401 from the backend, typically because the
// bearer token was missing, invalid or expired.
type ErrAuthentication struct {
	Msg string `json:"msg"`
}

func (e *ErrAuthentication) Error() string {
	if e.Msg == "" {
		return "Could not authenticate the request."
	}
	return fmt.Sprintf("Could not authenticate the request: %s", e.Msg)
}

// ErrAuthorization represents a 403 from the backend.
type ErrAuthorization struct {
	Msg string `json:"msg"`
}

func (e *ErrAuthorization) Error() string {
	if e.Msg == "" {
		return "The request is not authorized."
	}
	return fmt.Sprintf("The request is not authorized: %s", e.Msg)
}

// ErrBadRequest represents a 400 from the backend.
type ErrBadRequest struct {
	Msg string `json:"msg"`
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("Bad request: %s", e.Msg)
}

// ErrNotFound represents a 404 from the backend.
type ErrNotFound struct {
	Msg string `json:"msg"`
}

func (e *ErrNotFound) Error() string {
	if e.Msg == "" {
		return "Not found."
	}
	return e.Msg
}

// ErrConflict represents a 409 from the backend.
type ErrConflict struct {
	Msg string `json:"msg"`
}

func (e *ErrConflict) Error() string {
	return e.Msg
}

// ErrInternalServer represents a 500 from the backend.
type ErrInternalServer struct {
	Msg string `json:"msg"`
}

func (e *ErrInternalServer) Error() string {
	if e.Msg == "" {
		return "An internal server error occurred."
	}
	return fmt.Sprintf("An internal server error occurred: %s", e.Msg)
}

// ErrUnexpectedStatus represents any other non-success response.
type ErrUnexpectedStatus struct {
	StatusCode int
	Msg        string
}

func (e *ErrUnexpectedStatus) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("received %d from API server", e.StatusCode)
	}
	return fmt.Sprintf("received %d from API server: %s", e.StatusCode, e.Msg)
}

// newErrFromResponse maps an HTTP status code onto one of the typed errors
// above. The body is optional and may not even be JSON; in that case the
// message is simply left empty.
func newErrFromResponse(statusCode int, body []byte) error {
	payload := errorBody{}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	switch statusCode {
	case http.StatusUnauthorized:
		return &ErrAuthentication{Msg: payload.Msg}
	case http.StatusForbidden:
		return &ErrAuthorization{Msg: payload.Msg}
	case http.StatusBadRequest:
		return &ErrBadRequest{Msg: payload.Msg}
	case http.StatusNotFound:
		return &ErrNotFound{Msg: payload.Msg}
	case http.StatusConflict:
		return &ErrConflict{Msg: payload.Msg}
	case http.StatusInternalServerError:
		return &ErrInternalServer{Msg: payload.Msg}
	default:
		return &ErrUnexpectedStatus{StatusCode: statusCode, Msg: payload.Msg}
	}
}

// ErrorMessage returns the message the backend attached to err, or fallback
// when err did not come from the backend or carried no message.
func ErrorMessage(err error, fallback string) string {
	var msg string
	switch e := errors.Cause(err).(type) {
	case *ErrAuthentication:
		msg = e.Msg
	case *ErrAuthorization:
		msg = e.Msg
	case *ErrBadRequest:
		msg = e.Msg
	case *ErrNotFound:
		msg = e.Msg
	case *ErrConflict:
		msg = e.Msg
	case *ErrInternalServer:
		msg = e.Msg
	case *ErrUnexpectedStatus:
		msg = e.Msg
	}
	if msg == "" {
		return fallback
	}
	return msg
}

// StatusCode returns the HTTP status code behind err, or 0 when err did not
// come from a backend response.
func StatusCode(err error) int {
	switch e := errors.Cause(err).(type) {
	case *ErrAuthentication:
		return http.StatusUnauthorized
	case *ErrAuthorization:
		return http.StatusForbidden
	case *ErrBadRequest:
		return http.StatusBadRequest
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrConflict:
		return http.StatusConflict
	case *ErrInternalServer:
		return http.StatusInternalServerError
	case *ErrUnexpectedStatus:
		return e.StatusCode
	}
	return 0
}
