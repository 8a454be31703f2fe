package web

// errors.go maps service errors onto HTTP responses. Lookup misses become
// 404, type/operation conflicts and empty columns become 422, duplicate
// uploads 409, and anything unexpected is logged and returned as a plain
// 500 without leaking internals.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reportdev/reportd/internal/aggregate"
	"github.com/reportdev/reportd/internal/clean"
	"github.com/reportdev/reportd/internal/logging"
	"github.com/reportdev/reportd/internal/report"
)

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor translates an error into the HTTP status the boundary contract
// prescribes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, report.ErrUnknownReport),
		errors.Is(err, report.ErrUnknownColumn):
		return http.StatusNotFound
	case errors.Is(err, aggregate.ErrEmptyColumn),
		errors.Is(err, aggregate.ErrUnsupportedOperation),
		errors.Is(err, clean.ErrParseFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, report.ErrDuplicateUpload):
		return http.StatusConflict
	case errors.Is(err, report.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, report.ErrTooManyUploads):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with a JSON body and logs the
// technical error server-side with the request ID for correlation.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"path", r.URL.Path, "method", r.Method, "status", status, "error", err)
	} else {
		logger.Info("request rejected",
			"path", r.URL.Path, "method", r.Method, "status", status, "error", err)
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// respondBadRequest reports a malformed request parameter.
func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	logging.FromContext(r.Context()).Info("bad request",
		"path", r.URL.Path, "method", r.Method, "reason", msg)
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// respondUnprocessable reports a well-formed but semantically invalid
// parameter, like an unknown fill strategy or operation name.
func (s *Server) respondUnprocessable(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Info("unprocessable request",
		"path", r.URL.Path, "method", r.Method, "error", err)
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
