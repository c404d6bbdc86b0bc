// Package response writes the JSON envelope every storefront endpoint returns.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/tair/littleones/pkg/logger"
)

// Response is the common envelope. Fields carries per-field validation messages.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes resp with the given status code
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// OK writes a 200 success envelope
func OK(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Fail writes an error envelope
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Response{Success: false, Error: msg})
}

// Invalid writes a 422 envelope listing field errors
func Invalid(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error:   "Validation failed",
		Fields:  fields,
	})
}

// Decode reads a JSON request body into v, writing a 400 on failure.
// It reports whether decoding succeeded.
func Decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
