package models

const (
	LessonTypeTheory   = "theory"
	LessonTypePractice = "practice"
	LessonTypeQuiz     = "quiz"
	LessonTypeProject  = "project"
)

type Lesson struct {
	ID           int      `json:"id" db:"id"`
	PlanID       int      `json:"plan_id" db:"plan_id"`
	Title        string   `json:"title" db:"title"`
	TheoryMD     string   `json:"theory_md" db:"theory_md"`
	Task         string   `json:"task" db:"task"`
	LessonType   string   `json:"lesson_type" db:"lesson_type"`
	TimeEstimate int      `json:"time_estimate" db:"time_estimate"`
	DayNumber    int      `json:"day_number" db:"day_number"`
	ExtraLinks   []string `json:"extra_links" db:"extra_links"`
}

// LessonSummary is the list view of a lesson with the requesting
// user's completion flag joined in.
type LessonSummary struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	DayNumber    int    `json:"day_number"`
	TimeEstimate int    `json:"time_estimate"`
	LessonType   string `json:"lesson_type"`
	IsCompleted  bool   `json:"is_completed"`
}

type LessonDetail struct {
	Lesson
	IsCompleted bool `json:"is_completed"`
}

// LessonDescriptor is one lesson as returned by the plan generator,
// before anything is persisted.
type LessonDescriptor struct {
	Day          int      `json:"day"`
	Title        string   `json:"title"`
	TheoryMD     string   `json:"theory_md"`
	Task         string   `json:"task"`
	TaskType     string   `json:"task_type"`
	TimeEstimate int      `json:"time_estimate"`
	ExtraLinks   []string `json:"extra_links"`
}

func ValidLessonType(lessonType string) bool {
	switch lessonType {
	case LessonTypeTheory, LessonTypePractice, LessonTypeQuiz, LessonTypeProject:
		return true
	}
	return false
}
