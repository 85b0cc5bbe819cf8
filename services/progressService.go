package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"studyplan/db"
	"studyplan/models"
)

type ProgressService struct {
	lessonRepo   db.LessonRepository
	progressRepo db.ProgressRepository
	planRepo     db.PlanRepository
	streakRepo   db.StreakRepository
}

func NewProgressService(lessonRepo db.LessonRepository, progressRepo db.ProgressRepository, planRepo db.PlanRepository, streakRepo db.StreakRepository) *ProgressService {
	return &ProgressService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		planRepo:     planRepo,
		streakRepo:   streakRepo,
	}
}

// ToggleLessonCompletion flips the caller's completion mark for the
// lesson, recomputes the plan's cached progress, and — only on the
// incomplete-to-complete transition — records a lesson activity on
// today's streak. Un-completing never rolls the streak back.
func (s *ProgressService) ToggleLessonCompletion(userID int64, lessonID int) (*models.ToggleCompletionResponse, error) {
	log.Printf("[INFO] Toggling completion of lesson %d for user %d", lessonID, userID)

	lesson, err := s.lessonRepo.GetLessonByID(lessonID, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get lesson %d: %v", lessonID, err)
		return nil, err
	}

	mark, err := s.progressRepo.ToggleMark(userID, lessonID, lesson.TimeEstimate)
	if err != nil {
		log.Printf("[ERROR] Failed to toggle mark for lesson %d: %v", lessonID, err)
		return nil, err
	}

	progress, err := s.RecomputePlanProgress(lesson.PlanID)
	if err != nil {
		log.Printf("[ERROR] Failed to recompute progress for plan %d: %v", lesson.PlanID, err)
		return nil, err
	}

	if mark.IsCompleted {
		today := time.Now().UTC()
		if err := s.streakRepo.RecordActivity(userID, today, models.ActivityLesson, mark.TimeSpent); err != nil {
			log.Printf("[ERROR] Failed to record lesson activity for user %d: %v", userID, err)
			return nil, fmt.Errorf("failed to record lesson activity: %w", err)
		}
	}

	log.Printf("[INFO] Lesson %d toggled to completed=%t, plan %d progress=%.2f", lessonID, mark.IsCompleted, lesson.PlanID, progress)
	return &models.ToggleCompletionResponse{
		LessonID:    lessonID,
		IsCompleted: mark.IsCompleted,
		Progress:    progress,
	}, nil
}

// RecomputePlanProgress recalculates the plan's completion percentage
// from the owner's marks and persists it onto the plan. The stored
// value is a cache; this is the only place it is written.
func (s *ProgressService) RecomputePlanProgress(planID int) (float64, error) {
	totalLessons, err := s.lessonRepo.CountByPlan(planID)
	if err != nil {
		return 0, err
	}

	progress := 0.0
	if totalLessons > 0 {
		completedLessons, err := s.progressRepo.CountCompletedByPlanOwner(planID)
		if err != nil {
			return 0, err
		}
		progress = round2(float64(completedLessons) / float64(totalLessons) * 100)
	}

	if err := s.planRepo.UpdatePlanProgress(planID, progress); err != nil {
		return 0, err
	}

	return progress, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
