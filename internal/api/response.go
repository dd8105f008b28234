package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/verus/warehouse/internal/store"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// respond writes a success response.
func respond(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError writes a failure response with a plain message.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondValidation writes a 422 with a field-error map.
func respondValidation(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// respondStoreError maps store-layer errors to HTTP responses. notFoundMsg
// is used for ErrNotFound; anything unrecognized becomes a 500 with
// fallback as the message.
func respondStoreError(w http.ResponseWriter, err error, notFoundMsg, fallback string) {
	var ve *store.ValidationError
	var ise *store.InsufficientStockError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &ve):
		respondValidation(w, map[string]string{ve.Field: ve.Message})
	case errors.As(err, &ise):
		respondError(w, http.StatusConflict, ise.Error())
	default:
		slog.Error(fallback, "error", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
