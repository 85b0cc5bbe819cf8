package models

type LessonSearchResult struct {
	LessonID  int     `json:"lesson_id"`
	PlanID    int     `json:"plan_id"`
	Title     string  `json:"title"`
	DayNumber int     `json:"day_number"`
	Snippet   string  `json:"snippet"`
	Score     float64 `json:"score"`
}
