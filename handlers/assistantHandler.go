package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"studyplan/models"
	"studyplan/services/assistant"

	"github.com/gorilla/mux"
)

type AssistantHandler struct {
	service *assistant.Service
}

func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/assistant/chat", h.ProcessMessage).Methods("POST")
}

func (h *AssistantHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received assistant chat request")

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode assistant request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(req.Messages) == 0 {
		log.Printf("[ERROR] No messages provided in assistant request")
		h.writeErrorResponse(w, http.StatusBadRequest, "At least one message is required")
		return
	}

	result, err := h.service.ProcessMessage(userID, req.Messages)
	if err != nil {
		log.Printf("[ERROR] Assistant message processing failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[INFO] Assistant message processing completed successfully")
	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *AssistantHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AssistantHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
