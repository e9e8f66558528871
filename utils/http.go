package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// MessageResponse is the body shape for every terminal failure outcome
type MessageResponse struct {
	Message    string `json:"message"`
	ReasonCode string `json:"reasonCode,omitempty"`
	RetryAfter *int   `json:"retryAfter,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 OK envelope with the projection under the given key,
// e.g. {"success": true, "profile": {...}}
func WriteSuccess(w http.ResponseWriter, key string, projection interface{}) error {
	return WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		key:       projection,
	})
}

// WriteCreatedEntity writes a 201 Created envelope with the projection under the given key
func WriteCreatedEntity(w http.ResponseWriter, key string, projection interface{}) error {
	return WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		key:       projection,
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusBadRequest, MessageResponse{Message: message})
}

// WriteModerationBlocked writes a 400 Bad Request carrying the moderation reason code.
// Kept distinct from plain validation 400s: clients receive different bodies
// for the two failure modes even though the status matches.
func WriteModerationBlocked(w http.ResponseWriter, message, reasonCode string) error {
	return WriteJSON(w, http.StatusBadRequest, MessageResponse{
		Message:    message,
		ReasonCode: reasonCode,
	})
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter) error {
	return WriteJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Unauthorized"})
}

// WriteForbidden writes a 403 Forbidden response
func WriteForbidden(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return WriteJSON(w, http.StatusForbidden, MessageResponse{Message: message})
}

// WriteConflict writes a 409 Conflict response
func WriteConflict(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource already exists"
	}
	return WriteJSON(w, http.StatusConflict, MessageResponse{Message: message})
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, MessageResponse{Message: message})
}

// WriteTooManyRequests writes a 429 Too Many Requests response with a
// Retry-After header when the window remainder is known
func WriteTooManyRequests(w http.ResponseWriter, message string, retryAfterSeconds int) error {
	if message == "" {
		message = "Too many requests"
	}
	body := MessageResponse{Message: message}
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
		body.RetryAfter = &retryAfterSeconds
	}
	return WriteJSON(w, http.StatusTooManyRequests, body)
}

// WriteInternalServerError writes a 500 Internal Server Error response.
// The body is always generic; raw error detail stays in the logs.
func WriteInternalServerError(w http.ResponseWriter) error {
	return WriteJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
}
