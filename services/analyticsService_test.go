package services

import (
	"testing"

	"studyplan/models"
)

type fakeAnalyticsRepo struct {
	plans            int
	lessons          int
	completed        int
	timeSpent        int
	averageQuizScore float64
	recent           []models.RecentActivityItem
	summaries        []models.PlanProgressSummary
}

func (f *fakeAnalyticsRepo) CountPlans(userID int64) (int, error)            { return f.plans, nil }
func (f *fakeAnalyticsRepo) CountLessons(userID int64) (int, error)          { return f.lessons, nil }
func (f *fakeAnalyticsRepo) CountCompletedLessons(userID int64) (int, error) { return f.completed, nil }
func (f *fakeAnalyticsRepo) SumTimeSpent(userID int64) (int, error)          { return f.timeSpent, nil }
func (f *fakeAnalyticsRepo) AverageQuizScore(userID int64) (float64, error) {
	return f.averageQuizScore, nil
}
func (f *fakeAnalyticsRepo) RecentCompletions(userID int64, limit int) ([]models.RecentActivityItem, error) {
	return f.recent, nil
}
func (f *fakeAnalyticsRepo) PlanSummaries(userID int64) ([]models.PlanProgressSummary, error) {
	return f.summaries, nil
}

func TestGetUserAnalytics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		plans:            2,
		lessons:          6,
		completed:        2,
		timeSpent:        90,
		averageQuizScore: 83.333333,
		recent:           []models.RecentActivityItem{{LessonTitle: "Basics"}},
		summaries:        []models.PlanProgressSummary{{PlanID: 1}, {PlanID: 2}},
	}

	service := NewAnalyticsService(repo)

	analytics, err := service.GetUserAnalytics(1)
	if err != nil {
		t.Fatalf("GetUserAnalytics() returned error: %v", err)
	}

	if analytics.TotalPlans != 2 || analytics.TotalLessons != 6 || analytics.CompletedLessons != 2 {
		t.Errorf("unexpected counts: %+v", analytics)
	}
	if analytics.CompletionRate != 33.33 {
		t.Errorf("expected completion rate 33.33, got %v", analytics.CompletionRate)
	}
	if analytics.AverageQuizScore != 83.33 {
		t.Errorf("expected average quiz score rounded to 83.33, got %v", analytics.AverageQuizScore)
	}
	if analytics.TotalTimeSpent != 90 {
		t.Errorf("expected total time spent 90, got %d", analytics.TotalTimeSpent)
	}
	if len(analytics.RecentActivity) != 1 || len(analytics.PlansProgress) != 2 {
		t.Errorf("unexpected activity lists: %+v", analytics)
	}
}

func TestGetUserAnalyticsNoLessons(t *testing.T) {
	service := NewAnalyticsService(&fakeAnalyticsRepo{plans: 1})

	analytics, err := service.GetUserAnalytics(1)
	if err != nil {
		t.Fatalf("GetUserAnalytics() returned error: %v", err)
	}

	if analytics.CompletionRate != 0.0 {
		t.Errorf("expected completion rate 0.0 without lessons, got %v", analytics.CompletionRate)
	}
}
