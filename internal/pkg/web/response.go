package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/gopherkit/http/response"
)

const (
	HeaderContentType = "Content-Type"
	MimeJSON          = "application/json"
)

// OKResponse is the envelope of every successful response.
//
// Data is omitted when nil.
type OKResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed response.
//
// Errors carries field-level validation messages and is omitted when empty.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK writes a JSON-encoded success response to w with the provided HTTP status code.
//
// If msg is non-nil, its value is included under the "message" field.
// If data is non-nil, it is included under the "data" field:
//
//	{
//	  "message": "Friend request sent.",
//	  "data": {
//	    "id": 1,
//	    "status": "Pending"
//	  }
//	}
func OK[T any](w http.ResponseWriter, status int, msg *string, data *T) {
	payload := &OKResponse[*T]{}
	if msg != nil {
		payload.Message = *msg
	}

	if data != nil {
		payload.Data = data
	}

	response.JSON(w, status, payload)
}

// Fail writes a JSON-encoded error response to w with the provided HTTP status code.
//
// The reason is logged at Error level for server errors and at Debug level
// otherwise. It is never sent to the client.
func Fail(w http.ResponseWriter, status int, reason error, msg string, errs map[string]string) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "reason", reason)
	} else {
		slog.Debug("request rejected", "status", status, "reason", reason)
	}

	payload := &ErrorResponse{
		Message: msg,
		Errors:  errs,
	}
	response.JSON(w, status, payload)
}

func RespondOK[T any](w http.ResponseWriter, msg *string, data *T) {
	OK(w, http.StatusOK, msg, data)
}

func RespondCreated[T any](w http.ResponseWriter, msg *string, data *T) {
	OK(w, http.StatusCreated, msg, data)
}

func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func RespondBadRequest(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusBadRequest, err, msg, errs)
}

func RespondUnauthorized(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnauthorized, err, msg, errs)
}

func RespondForbidden(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusForbidden, err, msg, errs)
}

func RespondNotFound(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusNotFound, err, msg, errs)
}

func RespondConflict(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusConflict, err, msg, errs)
}

func RespondUnsupportedMediaType(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnsupportedMediaType, err, msg, errs)
}

func RespondRequestEntityTooLarge(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusRequestEntityTooLarge, err, msg, errs)
}

func RespondUnprocessableEntity(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnprocessableEntity, err, msg, errs)
}

func RespondTooManyRequests(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusTooManyRequests, err, msg, errs)
}

func RespondRequestTimeout(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusRequestTimeout, err, msg, errs)
}

// RespondInternalServerError reports err as a server failure, or as a request
// timeout when err comes from a cancelled or expired request context.
func RespondInternalServerError(w http.ResponseWriter, err error) {
	if IsContextError(err) {
		RespondRequestTimeout(w, err, "Request cancelled or timeout", nil)
		return
	}
	Fail(w, http.StatusInternalServerError, err, "An unexpected error occurred.", nil)
}

// IsContextError reports whether err was caused by a cancelled or expired context.
func IsContextError(err error) bool {
	if errors.Is(err, context.Canceled) {
		slog.Warn("request has been cancelled")
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("request timed out")
		return true
	}

	return false
}
