package models

import "time"

type RecentActivityItem struct {
	LessonTitle string    `json:"lesson_title"`
	CompletedAt time.Time `json:"completed_at"`
	TimeSpent   int       `json:"time_spent"`
}

type PlanProgressSummary struct {
	PlanID           int       `json:"plan_id"`
	Topic            string    `json:"topic"`
	Progress         float64   `json:"progress"`
	TotalLessons     int       `json:"total_lessons"`
	CompletedLessons int       `json:"completed_lessons"`
	CreatedAt        time.Time `json:"created_at"`
}

type UserAnalytics struct {
	TotalPlans       int                   `json:"total_plans"`
	TotalLessons     int                   `json:"total_lessons"`
	CompletedLessons int                   `json:"completed_lessons"`
	TotalTimeSpent   int                   `json:"total_time_spent"`
	CompletionRate   float64               `json:"completion_rate"`
	AverageQuizScore float64               `json:"average_quiz_score"`
	RecentActivity   []RecentActivityItem  `json:"recent_activity"`
	PlansProgress    []PlanProgressSummary `json:"plans_progress"`
}
