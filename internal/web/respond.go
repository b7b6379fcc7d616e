package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
)

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *roadmap.Error `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("WARNING: writing response: %v", err)
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	e := roadmap.AsError(err)
	writeJSON(w, statusFor(e.Code), envelope{Error: e})
}

// statusFor maps domain error codes to HTTP statuses.
func statusFor(code roadmap.Code) int {
	switch code {
	case roadmap.CodeNotFound:
		return http.StatusNotFound
	case roadmap.CodeValidation, roadmap.CodeDuplicate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return roadmap.Validationf("invalid JSON body: %v", err)
	}
	return nil
}

// optional is a JSON field that tells an explicit null apart from an
// absent key.
type optional[T any] struct {
	Set   bool
	Value *T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
