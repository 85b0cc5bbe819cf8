package models

import "time"

const (
	KnowledgeLevelBeginner     = "beginner"
	KnowledgeLevelIntermediate = "intermediate"
	KnowledgeLevelExperienced  = "experienced"
)

type LearningPlan struct {
	ID             int       `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	Topic          string    `json:"topic" db:"topic"`
	KnowledgeLevel string    `json:"knowledge_level" db:"knowledge_level"`
	WeeklyHours    int       `json:"weekly_hours" db:"weekly_hours"`
	Progress       float64   `json:"progress" db:"progress"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type GeneratePlanRequest struct {
	Topic          string `json:"topic"`
	KnowledgeLevel string `json:"knowledge_level"`
	WeeklyHours    int    `json:"weekly_hours"`
}

type GeneratePlanResponse struct {
	Message string `json:"message"`
	PlanID  int    `json:"plan_id"`
}

func ValidKnowledgeLevel(level string) bool {
	switch level {
	case KnowledgeLevelBeginner, KnowledgeLevelIntermediate, KnowledgeLevelExperienced:
		return true
	}
	return false
}
