package services

import (
	"log"

	"studyplan/db"
	"studyplan/models"
)

const recentActivityLimit = 10

type AnalyticsService struct {
	analyticsRepo db.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo db.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// GetUserAnalytics aggregates learning statistics across all the
// user's plans. Completed-lesson and time-spent figures are global
// over the user's marks, not broken down per plan; the per-plan view
// is the separate plans_progress list. Read-only.
func (s *AnalyticsService) GetUserAnalytics(userID int64) (*models.UserAnalytics, error) {
	log.Printf("[INFO] Computing analytics for user %d", userID)

	totalPlans, err := s.analyticsRepo.CountPlans(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to count plans for user %d: %v", userID, err)
		return nil, err
	}

	totalLessons, err := s.analyticsRepo.CountLessons(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to count lessons for user %d: %v", userID, err)
		return nil, err
	}

	completedLessons, err := s.analyticsRepo.CountCompletedLessons(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to count completed lessons for user %d: %v", userID, err)
		return nil, err
	}

	totalTimeSpent, err := s.analyticsRepo.SumTimeSpent(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to sum time spent for user %d: %v", userID, err)
		return nil, err
	}

	averageQuizScore, err := s.analyticsRepo.AverageQuizScore(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to average quiz score for user %d: %v", userID, err)
		return nil, err
	}

	recentActivity, err := s.analyticsRepo.RecentCompletions(userID, recentActivityLimit)
	if err != nil {
		log.Printf("[ERROR] Failed to get recent completions for user %d: %v", userID, err)
		return nil, err
	}

	plansProgress, err := s.analyticsRepo.PlanSummaries(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get plan summaries for user %d: %v", userID, err)
		return nil, err
	}

	completionRate := 0.0
	if totalLessons > 0 {
		completionRate = round2(float64(completedLessons) / float64(totalLessons) * 100)
	}

	log.Printf("[INFO] User %d analytics: %d plans, %d/%d lessons completed", userID, totalPlans, completedLessons, totalLessons)
	return &models.UserAnalytics{
		TotalPlans:       totalPlans,
		TotalLessons:     totalLessons,
		CompletedLessons: completedLessons,
		TotalTimeSpent:   totalTimeSpent,
		CompletionRate:   completionRate,
		AverageQuizScore: round2(averageQuizScore),
		RecentActivity:   recentActivity,
		PlansProgress:    plansProgress,
	}, nil
}
