package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CamiloBarros/todolist/internal/store"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeError maps the store taxonomy onto status codes. Anything outside
// the taxonomy is reported as an internal error without leaking structure.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", errorDetail(err, "invalid input"))
	case store.IsNotFound(err):
		writeErrorCode(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case store.IsConflict(err):
		writeErrorCode(w, http.StatusConflict, "CONFLICT", errorDetail(err, "operation conflicts with existing state"))
	default:
		writeErrorCode(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// errorDetail surfaces the safe detail of a store error, if any.
func errorDetail(err error, fallback string) string {
	var storeErr *store.Error
	if errors.As(err, &storeErr) && storeErr.Detail != "" {
		return storeErr.Detail
	}
	return fallback
}
