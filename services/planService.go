package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"studyplan/db"
	"studyplan/models"
)

// PlanGenerator produces validated lesson descriptors for a topic.
type PlanGenerator interface {
	GenerateLearningPlan(topic, level string, weeklyHours int) ([]models.LessonDescriptor, error)
}

// LessonIndexer receives newly created lessons for semantic indexing.
// Indexing is best-effort; a failure never fails plan creation.
type LessonIndexer interface {
	IndexLessons(userID int64, planID int, lessons []*models.Lesson) error
}

type PlanService struct {
	planRepo     db.PlanRepository
	lessonRepo   db.LessonRepository
	progressRepo db.ProgressRepository
	generator    PlanGenerator
	indexer      LessonIndexer
}

func NewPlanService(planRepo db.PlanRepository, lessonRepo db.LessonRepository, progressRepo db.ProgressRepository, generator PlanGenerator, indexer LessonIndexer) *PlanService {
	return &PlanService{
		planRepo:     planRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		generator:    generator,
		indexer:      indexer,
	}
}

// GeneratePlan asks the generator for a full plan and persists plan
// plus lessons as one unit. Nothing is written until every generated
// lesson has been validated, so a generation failure leaves no
// orphaned plan behind.
func (s *PlanService) GeneratePlan(userID int64, req *models.GeneratePlanRequest) (*models.LearningPlan, error) {
	log.Printf("[INFO] Starting plan generation for user %d", userID)

	if err := s.validateGenerateRequest(req); err != nil {
		log.Printf("[ERROR] Plan generation validation failed: %v", err)
		return nil, err
	}

	descriptors, err := s.generator.GenerateLearningPlan(req.Topic, req.KnowledgeLevel, req.WeeklyHours)
	if err != nil {
		log.Printf("[ERROR] Plan generation failed for topic %q: %v", req.Topic, err)
		return nil, fmt.Errorf("failed to generate learning plan: %w", err)
	}

	plan := &models.LearningPlan{
		UserID:         userID,
		Topic:          req.Topic,
		KnowledgeLevel: req.KnowledgeLevel,
		WeeklyHours:    req.WeeklyHours,
	}

	lessons := make([]*models.Lesson, 0, len(descriptors))
	for _, d := range descriptors {
		lessons = append(lessons, &models.Lesson{
			Title:        d.Title,
			TheoryMD:     d.TheoryMD,
			Task:         d.Task,
			LessonType:   d.TaskType,
			TimeEstimate: d.TimeEstimate,
			DayNumber:    d.Day,
			ExtraLinks:   d.ExtraLinks,
		})
	}

	if err := s.planRepo.CreatePlanWithLessons(plan, lessons); err != nil {
		log.Printf("[ERROR] Failed to store plan for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to store learning plan: %w", err)
	}

	if s.indexer != nil {
		if err := s.indexer.IndexLessons(userID, plan.ID, lessons); err != nil {
			log.Printf("[ERROR] Failed to index lessons for plan %d: %v", plan.ID, err)
		}
	}

	log.Printf("[INFO] Created plan %d with %d lessons for user %d", plan.ID, len(lessons), userID)
	return plan, nil
}

func (s *PlanService) ListPlans(userID int64) ([]*models.LearningPlan, error) {
	log.Printf("[INFO] Listing plans for user %d", userID)

	plans, err := s.planRepo.GetPlansByUser(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to list plans for user %d: %v", userID, err)
		return nil, err
	}

	return plans, nil
}

func (s *PlanService) GetPlanLessons(userID int64, planID int) ([]models.LessonSummary, error) {
	log.Printf("[INFO] Listing lessons of plan %d for user %d", planID, userID)

	if _, err := s.planRepo.GetPlanByID(planID, userID); err != nil {
		log.Printf("[ERROR] Failed to get plan %d: %v", planID, err)
		return nil, err
	}

	return s.lessonRepo.GetLessonSummaries(planID, userID)
}

func (s *PlanService) GetLessonDetail(userID int64, lessonID int) (*models.LessonDetail, error) {
	log.Printf("[INFO] Getting lesson %d for user %d", lessonID, userID)

	lesson, err := s.lessonRepo.GetLessonByID(lessonID, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get lesson %d: %v", lessonID, err)
		return nil, err
	}

	detail := &models.LessonDetail{Lesson: *lesson}

	mark, err := s.progressRepo.GetMark(userID, lessonID)
	if err == nil {
		detail.IsCompleted = mark.IsCompleted
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	return detail, nil
}

func (s *PlanService) validateGenerateRequest(req *models.GeneratePlanRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}

	if strings.TrimSpace(req.Topic) == "" {
		return fmt.Errorf("topic is required")
	}

	if !models.ValidKnowledgeLevel(req.KnowledgeLevel) {
		return fmt.Errorf("invalid knowledge level: %q", req.KnowledgeLevel)
	}

	if req.WeeklyHours <= 0 {
		return fmt.Errorf("weekly hours must be positive")
	}

	return nil
}
