package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/logger"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Error attaches a client-visible message to one of the sentinel errors.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message string) error     { return &Error{Err: ErrNotFound, Message: message} }
func BadRequest(message string) error   { return &Error{Err: ErrBadRequest, Message: message} }
func Conflict(message string) error     { return &Error{Err: ErrConflict, Message: message} }
func Forbidden(message string) error    { return &Error{Err: ErrForbidden, Message: message} }
func Unauthorized(message string) error { return &Error{Err: ErrUnauthorized, Message: message} }

// Status maps an error onto its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts the request with the {"error": "..."} envelope.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
