package main

import (
	"fmt"
	"log"
	"net/http"

	"studyplan/config"
	"studyplan/db"
	"studyplan/handlers"
	"studyplan/services"
	"studyplan/services/assistant"
	"studyplan/services/genai"
	"studyplan/services/lessonindex"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	if cfg.AnthropicAPIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY environment variable is required")
	}

	planRepo, err := db.NewPostgresPlanRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize plan database: %v", err)
	}
	defer planRepo.Close()

	lessonRepo, err := db.NewPostgresLessonRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize lesson database: %v", err)
	}
	defer lessonRepo.Close()

	progressRepo, err := db.NewPostgresProgressRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize progress database: %v", err)
	}
	defer progressRepo.Close()

	streakRepo, err := db.NewPostgresStreakRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize streak database: %v", err)
	}
	defer streakRepo.Close()

	quizRepo, err := db.NewPostgresQuizRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize quiz database: %v", err)
	}
	defer quizRepo.Close()

	noteRepo, err := db.NewPostgresNoteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize note database: %v", err)
	}
	defer noteRepo.Close()

	analyticsRepo, err := db.NewPostgresAnalyticsRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize analytics database: %v", err)
	}
	defer analyticsRepo.Close()

	genaiService := genai.NewService(cfg.OpenAIAPIKey)

	// Semantic lesson search is optional; the rest of the service works
	// without a Pinecone index.
	var indexService *lessonindex.Service
	if cfg.PineconeAPIKey != "" {
		indexService, err = lessonindex.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
		if err != nil {
			log.Fatalf("Failed to initialize lesson index service: %v", err)
		}
	} else {
		log.Printf("[INFO] PINECONE_API_KEY not set, lesson search disabled")
	}

	var indexer services.LessonIndexer
	if indexService != nil {
		indexer = indexService
	}

	planService := services.NewPlanService(planRepo, lessonRepo, progressRepo, genaiService, indexer)
	progressService := services.NewProgressService(lessonRepo, progressRepo, planRepo, streakRepo)
	quizService := services.NewQuizService(quizRepo, lessonRepo, streakRepo, genaiService)
	noteService := services.NewNoteService(noteRepo, lessonRepo, streakRepo)
	streakService := services.NewStreakService(streakRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	assistantService, err := assistant.NewService(cfg.AnthropicAPIKey, planService, streakService)
	if err != nil {
		log.Fatalf("Failed to initialize assistant service: %v", err)
	}

	planHandler := handlers.NewPlanHandler(planService)
	lessonHandler := handlers.NewLessonHandler(planService, progressService, indexService)
	quizHandler := handlers.NewQuizHandler(quizService)
	noteHandler := handlers.NewNoteHandler(noteService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, streakService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	planHandler.RegisterRoutes(router)
	lessonHandler.RegisterRoutes(router)
	quizHandler.RegisterRoutes(router)
	noteHandler.RegisterRoutes(router)
	analyticsHandler.RegisterRoutes(router)
	assistantHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
