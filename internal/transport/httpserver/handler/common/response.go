package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorMapping turns a sentinel error into a response. An empty Message means
// the error text itself is shown to the client.
type ErrorMapping struct {
	Err     error
	Status  int
	Code    string
	Message string
}

// MatchError returns the first mapping whose sentinel is in err's chain.
func MatchError(err error, mappings []ErrorMapping) (ErrorMapping, bool) {
	for _, mapping := range mappings {
		if errors.Is(err, mapping.Err) {
			if mapping.Message == "" {
				mapping.Message = err.Error()
			}
			return mapping, true
		}
	}
	return ErrorMapping{}, false
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON reads exactly one JSON value with no unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("body must contain a single json value")
	}
	return nil
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, code, message)
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}
