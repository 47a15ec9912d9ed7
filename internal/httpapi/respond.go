package httpapi

import (
	"encoding/json"
	"net/http"

	"holdco-backend/internal/forms"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFieldErrors answers 422 with the inline validation messages the
// client renders next to each input.
func writeFieldErrors(w http.ResponseWriter, errs []forms.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"fields": errs,
	})
}
