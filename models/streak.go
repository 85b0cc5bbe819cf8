package models

import "time"

// StreakDay aggregates a user's study activity for one calendar date.
// Exactly one row exists per (user, date); counters only ever go up.
type StreakDay struct {
	ID               int       `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	Date             time.Time `json:"date" db:"date"`
	LessonsCompleted int       `json:"lessons_completed" db:"lessons_completed"`
	QuizzesTaken     int       `json:"quizzes_taken" db:"quizzes_taken"`
	NotesCreated     int       `json:"notes_created" db:"notes_created"`
	TimeSpent        int       `json:"time_spent" db:"time_spent"`
}

// ActivityScore weights the day's activity for calendar intensity:
// lessons count triple, quizzes double, notes single.
func (d StreakDay) ActivityScore() int {
	return 3*d.LessonsCompleted + 2*d.QuizzesTaken + d.NotesCreated
}

type ActivityKind string

const (
	ActivityLesson ActivityKind = "lesson"
	ActivityQuiz   ActivityKind = "quiz"
	ActivityNote   ActivityKind = "note"
)

const (
	StreakStatusActiveToday     = "active_today"
	StreakStatusActiveYesterday = "active_yesterday"
	StreakStatusActive          = "active"
	StreakStatusInactive        = "inactive"
)

type CalendarDay struct {
	Date             string `json:"date"`
	Count            int    `json:"count"`
	LessonsCompleted int    `json:"lessons"`
	QuizzesTaken     int    `json:"quizzes"`
	NotesCreated     int    `json:"notes"`
}

type StreakStats struct {
	CurrentStreak    int           `json:"current_streak"`
	LongestStreak    int           `json:"longest_streak"`
	TotalActiveDays  int           `json:"total_active_days"`
	ActivityCalendar []CalendarDay `json:"activity_calendar"`
	StreakStatus     string        `json:"streak_status"`
}
