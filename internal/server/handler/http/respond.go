// Package http provides the HTTP handlers and routing for the counselling
// API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/edupath/counsel/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error onto its status category. Details of
// unclassified errors are not echoed to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	detail := "internal error"
	if apperr.KindOf(err) != apperr.Internal {
		detail = err.Error()
	}
	http.Error(w, detail, status)
}

// decodeValid decodes the JSON body into v and validates it.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request")
	}
	if err := validate.Struct(v); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request")
	}
	return nil
}
