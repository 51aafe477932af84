package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mkrupp/messagely/internal/domain"
)

// MaxRequestBodySize caps decoded JSON request bodies.
const MaxRequestBodySize = 1 << 20

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// StatusForError maps an error to its HTTP status by its domain kind.
// Unknown errors map to 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

// WriteError writes the JSON error payload for err.
// Server errors are reported with a generic message so store details never leak.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusForError(err)

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = publicMessage(err)
	}

	//nolint:errcheck // the client is gone if this fails
	WriteJSON(w, status, ErrorBody{Error: ErrorDetail{Message: message, Status: status}})
}

// publicMessage returns the message of the first domain error in err's chain.
func publicMessage(err error) string {
	for _, known := range []error{
		domain.ErrUserAlreadyExists,
		domain.ErrUserNotFound,
		domain.ErrMessagesNotFound,
		domain.ErrMessageNotFound,
		domain.ErrInvalidMessageID,
		domain.ErrInvalidCredentials,
		domain.ErrNoAuthToken,
		domain.ErrInvalidAuthToken,
		domain.ErrAccessDenied,
		domain.ErrUnauthorized,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return err.Error()
}

// DecodeJSON decodes the request body into v.
// Malformed bodies yield an error wrapping domain.ErrInvalidInput.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: missing request body", domain.ErrInvalidInput)
		}

		return fmt.Errorf("%w: malformed JSON body: %w", domain.ErrInvalidInput, err)
	}

	return nil
}
