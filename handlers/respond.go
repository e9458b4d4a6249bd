package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hrportal/api"
	"hrportal/timesheet"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, api.ErrorResponse{Error: msg})
}

// respondValidation maps the error taxonomy onto the wire: validation
// failures list every offending day; anything else is a single message.
func respondValidation(w http.ResponseWriter, err error) {
	var verr *timesheet.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, api.ValidationErrorResponse{Errors: verr.Messages})
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
