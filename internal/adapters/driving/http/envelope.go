package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fieldworks/auth-core/internal/core/domain"
)

// Envelope is the uniform response body for every endpoint
// @Description Uniform API response envelope
type Envelope struct {
	Status     bool        `json:"status"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// writeEnvelope writes the uniform response envelope. Status is derived
// from the code: anything in the 2xx range reads as success.
func writeEnvelope(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Envelope{
		Status:     statusCode >= 200 && statusCode < 300,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// writeErr maps a domain error kind to its transport status code.
// Internal failures get a generic message; the detail stays in logs.
func writeErr(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		writeEnvelope(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	writeEnvelope(w, statusFromKind(de.Kind), de.Message, nil)
}

func statusFromKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
