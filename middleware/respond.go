package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gourmoire/authkit"
)

// failureEnvelope is the wire shape of every authentication failure.
type failureEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    authkit.Code `json:"code"`
}

// WriteError writes aerr as the standard JSON failure envelope with its
// mapped HTTP status.
func WriteError(w http.ResponseWriter, aerr *authkit.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(aerr.Status)
	_ = json.NewEncoder(w).Encode(failureEnvelope{
		Success: false,
		Message: aerr.Message,
		Code:    aerr.Code,
	})
}
