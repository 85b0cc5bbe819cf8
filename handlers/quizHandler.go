package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"studyplan/db"
	"studyplan/models"
	"studyplan/services"
	"studyplan/services/genai"

	"github.com/gorilla/mux"
)

type QuizHandler struct {
	service *services.QuizService
}

func NewQuizHandler(service *services.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

func (h *QuizHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/lessons/{id:[0-9]+}/quiz", h.GenerateQuiz).Methods("POST")
	router.HandleFunc("/quizzes/{id:[0-9]+}", h.GetQuiz).Methods("GET")
	router.HandleFunc("/quizzes/{id:[0-9]+}/submit", h.SubmitQuiz).Methods("POST")
}

func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
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

	// The body is optional; an empty body means default question count.
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	quiz, created, err := h.service.GenerateQuizForLesson(userID, lessonID, req.NumQuestions)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			h.writeErrorResponse(w, http.StatusNotFound, "Lesson not found")
		case errors.Is(err, genai.ErrGenerationFailed):
			h.writeErrorResponse(w, http.StatusBadGateway, "Failed to generate quiz")
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to create quiz")
		}
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	h.writeJSONResponse(w, statusCode, quiz)
}

func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	quizID, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	quiz, err := h.service.GetQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Quiz not found")
		} else {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve quiz")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, quiz)
}

func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	vars := mux.Vars(r)
	quizID, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	result, err := h.service.SubmitQuiz(userID, quizID, &req)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Quiz not found")
		} else {
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *QuizHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *QuizHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
