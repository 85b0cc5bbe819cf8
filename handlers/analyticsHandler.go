package handlers

import (
	"encoding/json"
	"net/http"

	"studyplan/services"

	"github.com/gorilla/mux"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	streakService    *services.StreakService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, streakService *services.StreakService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		streakService:    streakService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/analytics", h.GetAnalytics).Methods("GET")
	router.HandleFunc("/streaks", h.GetStreaks).Methods("GET")
}

func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	analytics, err := h.analyticsService.GetUserAnalytics(userID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, analytics)
}

func (h *AnalyticsHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	stats, err := h.streakService.GetStreakStats(userID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to compute streak stats")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, stats)
}

func (h *AnalyticsHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AnalyticsHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
