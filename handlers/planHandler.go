package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"studyplan/db"
	"studyplan/models"
	"studyplan/services"
	"studyplan/services/genai"

	"github.com/gorilla/mux"
)

type PlanHandler struct {
	service *services.PlanService
}

func NewPlanHandler(service *services.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/plans/generate", h.GeneratePlan).Methods("POST")
	router.HandleFunc("/plans", h.ListPlans).Methods("GET")
	router.HandleFunc("/plans/{id:[0-9]+}/lessons", h.GetPlanLessons).Methods("GET")
}

func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	plan, err := h.service.GeneratePlan(userID, &req)
	if err != nil {
		if errors.Is(err, genai.ErrGenerationFailed) {
			h.writeErrorResponse(w, http.StatusBadGateway, "Failed to generate learning plan")
		} else {
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, plan)
}

func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	plans, err := h.service.ListPlans(userID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, plans)
}

func (h *PlanHandler) GetPlanLessons(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	planID, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	lessons, err := h.service.GetPlanLessons(userID, planID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Plan not found")
		} else {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve lessons")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, lessons)
}

func (h *PlanHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *PlanHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
