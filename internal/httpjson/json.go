// Package httpjson carries the tiny amount of JSON plumbing shared by
// the api packages: bounded request decoding and uniform responses.
package httpjson

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/contestarena/arena/internal/logutil"
)

const maxBodySize = 1 << 20

// Decode reads the request body into out, rejecting bodies over 1MiB.
// Unknown fields are ignored, so clients may send extra keys (a
// confirm-password echo, for instance) without being rejected. Errors
// are client errors, suitable for a 400.
func Decode(r *http.Request, out interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("unable to parse request body: %w", err)
	}
	return nil
}

func Write(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	buf, err := json.Marshal(body)
	if err != nil {
		log := logutil.ForRequest(r)
		log.Error().Err(err).Msg("Unable to encode response body")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf)
}

// Message writes the {"message": ...} shape used for every non-payload
// response in the api.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	Write(w, r, status, map[string]string{"message": msg})
}

// FieldErrors writes a 400-class response carrying per-field messages.
func FieldErrors(w http.ResponseWriter, r *http.Request, msg string, fields map[string]string) {
	Write(w, r, http.StatusBadRequest, map[string]interface{}{
		"message": msg,
		"errors":  fields,
	})
}

// Internal logs err and writes a generic 500. The error detail never
// reaches the client.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	log := logutil.ForRequest(r)
	log.Error().Err(err).Msg("Request failed")
	Message(w, r, http.StatusInternalServerError, "internal error")
}
