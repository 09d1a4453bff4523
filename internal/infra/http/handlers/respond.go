package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cardlink/synergy-crm/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses. Every mutation
// reports success or a human-readable reason.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch usecase.ErrCode(err) {
	case usecase.CodeValidation:
		status = http.StatusBadRequest
	case usecase.CodeNotFound:
		status = http.StatusNotFound
	case usecase.CodeReference:
		status = http.StatusUnprocessableEntity
	case usecase.CodeGeneration, usecase.CodeTransport:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{Success: false, Message: err.Error()})
}
