package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// InternalErrorMessage is the only text clients see for unexpected faults.
const InternalErrorMessage = "An unexpected error occurred"

// ErrEncodeResponse is returned by WriteJSON when payload cannot be
// marshalled (for example a float64 that is ±Inf or NaN). Nothing has been
// written to the client in that case, so the caller can still send an error.
var ErrEncodeResponse = errors.New("encode response")

// WriteJSON encodes payload as the response body with the given status.
// The payload is marshalled before the status line goes out.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeResponse, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, map[string]string{
		"error": msg,
	})
}
