package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cardlink/synergy-crm/internal/facade"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

type EmailHandler struct {
	Data *facade.DataFacade
}

func NewEmailHandler(data *facade.DataFacade) *EmailHandler {
	return &EmailHandler{Data: data}
}

func (h *EmailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}
	input.ContactID = chi.URLParam(r, "id")

	email, err := h.Data.AddEmail(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, email)
}

func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Data.Emails())
}

func (h *EmailHandler) ListForContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, h.Data.EmailsForContact(contactID))
}

func (h *EmailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch usecase.EmailPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}

	email, err := h.Data.UpdateEmail(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, email)
}

func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Data.DeleteEmail(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type sendNowRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendNow delivers immediately. No record exists unless delivery worked.
func (h *EmailHandler) SendNow(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var req sendNowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}

	email, err := h.Data.SendNow(r.Context(), contactID, req.Subject, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, email)
}

type scheduleRequest struct {
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

func (h *EmailHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON"})
		return
	}

	email, err := h.Data.ScheduleEmail(r.Context(), contactID, req.Subject, req.Body, req.ScheduledFor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, email)
}
