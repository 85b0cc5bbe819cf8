package models

import "time"

// ProgressMark records whether one user has completed one lesson.
// Rows are created lazily on the first completion toggle and are
// never deleted; the flag flips on every toggle.
type ProgressMark struct {
	ID          int        `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	LessonID    int        `json:"lesson_id" db:"lesson_id"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	TimeSpent   int        `json:"time_spent" db:"time_spent"`
}

type ToggleCompletionResponse struct {
	LessonID    int     `json:"lesson_id"`
	IsCompleted bool    `json:"is_completed"`
	Progress    float64 `json:"progress"`
}
