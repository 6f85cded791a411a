package api

import (
	"encoding/json"
	"net/http"

	"chatdesk/internal/domain"
	"chatdesk/internal/usecase"
)

type personaHandlers struct {
	persona PersonaUseCase
}

type personaRequest struct {
	Message string        `json:"message"`
	History []domain.Turn `json:"history"`
}

type personaResponse struct {
	Reply string `json:"reply"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

func (h *personaHandlers) handleChat(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalid(w, "invalid JSON body: "+err.Error())
		return
	}

	reply, err := h.persona.Chat(r.Context(), usecase.PersonaInput{Message: req.Message, History: req.History})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, personaResponse{Reply: reply})
}

func (h *personaHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.persona.Health(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, healthResponse{Status: health.Status, Provider: health.Provider, Model: health.Model})
}
