package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"forelegg/internal/domain"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// writeAssessError maps engine errors to status codes. Everything the engine
// rejects is a client mistake.
func writeAssessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDeclaration), errors.Is(err, domain.ErrUnknownCategory):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "assessment failed")
	}
}
