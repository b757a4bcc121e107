package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/staynest/staynest-backend/internal/httperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single place errors become responses: taxonomy errors keep
// their status and message, anything else becomes a generic 500.
func writeError(w http.ResponseWriter, err error) {
	he := httperr.From(err)
	if he.Status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, he.Status, he)
}
