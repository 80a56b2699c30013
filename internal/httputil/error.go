package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

func TooManyRequests(w http.ResponseWriter, msg string) {
	slog.Warn("rate limited", "message", msg)
	http.Error(w, msg, http.StatusTooManyRequests)
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSONError logs like the plain helpers but answers with a JSON body.
func JSONError(w http.ResponseWriter, status int, msg string, err error) {
	switch {
	case status >= 500:
		slog.Error(msg, "error", err)
		msg = "Internal Server Error"
	case err != nil:
		slog.Warn("request failed", "status", status, "message", msg, "error", err)
	default:
		slog.Warn("request failed", "status", status, "message", msg)
	}
	JSON(w, status, errorBody{Error: msg})
}

// JSONValidationError answers 400 with one message per invalid field.
func JSONValidationError(w http.ResponseWriter, err error) {
	fields := FieldErrors(err)
	if fields == nil {
		JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	slog.Warn("validation failed", "fields", fields)
	JSON(w, http.StatusBadRequest, errorBody{Error: "validasi gagal", Fields: fields})
}
