package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studyplan/db"
	"studyplan/services"
	"studyplan/services/lessonindex"

	"github.com/gorilla/mux"
)

const defaultSearchLimit = 5

type LessonHandler struct {
	planService     *services.PlanService
	progressService *services.ProgressService
	indexService    *lessonindex.Service
}

func NewLessonHandler(planService *services.PlanService, progressService *services.ProgressService, indexService *lessonindex.Service) *LessonHandler {
	return &LessonHandler{
		planService:     planService,
		progressService: progressService,
		indexService:    indexService,
	}
}

func (h *LessonHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/lessons/search", h.SearchLessons).Methods("GET")
	router.HandleFunc("/lessons/{id:[0-9]+}", h.GetLesson).Methods("GET")
	router.HandleFunc("/lessons/{id:[0-9]+}/complete", h.ToggleCompletion).Methods("POST")
}

func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	lessonID, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	lesson, err := h.planService.GetLessonDetail(userID, lessonID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Lesson not found")
		} else {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve lesson")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, lesson)
}

func (h *LessonHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	lessonID, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	result, err := h.progressService.ToggleLessonCompletion(userID, lessonID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Lesson not found")
		} else {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to update completion")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *LessonHandler) SearchLessons(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	if h.indexService == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Lesson search is not configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	limit := defaultSearchLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	results, err := h.indexService.Search(userID, query, limit)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to search lessons")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, results)
}

func (h *LessonHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *LessonHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
