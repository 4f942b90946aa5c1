package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	lserrors "github.com/jmylchreest/ledstripd/internal/errors"
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// APIError is the error body of every failed request: {"error": "..."}.
// It implements huma.StatusError so typed handlers produce the same shape.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Human readable error"`
	err     error
}

func (e *APIError) Error() string {
	return e.Message
}

// GetStatus returns the HTTP status code.
func (e *APIError) GetStatus() int {
	return e.Status
}

func (e *APIError) Unwrap() error {
	return e.err
}

// NewAPIError creates an APIError wrapping cause.
func NewAPIError(status int, message string, cause error) *APIError {
	return &APIError{Status: status, Message: message, err: cause}
}

// requestError maps a decode or validation error to a 400. missing is the
// message used when a required field is absent.
func requestError(err error, missing string) *APIError {
	switch {
	case lserrors.IsMissingField(err):
		return NewAPIError(http.StatusBadRequest, missing, err)
	case lserrors.IsMalformedPayload(err):
		return NewAPIError(http.StatusBadRequest, MsgInvalidJSON, err)
	default:
		return toAPIError(err)
	}
}

// toAPIError maps any handler error to an APIError.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, strip.ErrControllerStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return NewAPIError(http.StatusServiceUnavailable, MsgUnavailable, err)
	case lserrors.IsMalformedPayload(err):
		return NewAPIError(http.StatusBadRequest, MsgInvalidJSON, err)
	default:
		return NewAPIError(http.StatusInternalServerError, MsgInternal, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	writeJSON(w, apiErr.Status, apiErr)
}
