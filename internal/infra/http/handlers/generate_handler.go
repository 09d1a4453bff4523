package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardlink/synergy-crm/internal/facade"
)

type GenerateHandler struct {
	Data *facade.DataFacade
}

func NewGenerateHandler(data *facade.DataFacade) *GenerateHandler {
	return &GenerateHandler{Data: data}
}

type generateRequest struct {
	Notes string `json:"notes"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

// Generate drafts a follow-up email body from the contact's note history
// plus whatever new notes came with the request. Multi-second latency is
// normal here; the client waits.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}

	body, err := h.Data.GenerateEmail(r.Context(), contactID, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Success: true, Email: body})
}
