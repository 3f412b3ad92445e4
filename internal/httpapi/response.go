package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"nutriplan-api/internal/models"
	"nutriplan-api/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData[T any](w http.ResponseWriter, message string, data T) {
	writeJSON(w, http.StatusOK, models.Envelope[T]{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string, fields []models.FieldError) {
	writeJSON(w, status, models.Envelope[any]{Message: message, Errors: fields})
}

// writeError maps err to a status code and failure envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeFailure(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
	case errors.As(err, &verrs):
		writeFailure(w, http.StatusUnprocessableEntity, "validation failed", verrs)
	case errors.Is(err, validation.ErrMalformedBody):
		writeFailure(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeFailure(w, http.StatusInternalServerError, "internal error", nil)
	}
}
