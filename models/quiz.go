package models

import "time"

type Quiz struct {
	ID        int            `json:"id" db:"id"`
	LessonID  int            `json:"lesson_id" db:"lesson_id"`
	Title     string         `json:"title" db:"title"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	Questions []QuizQuestion `json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID            int    `json:"id" db:"id"`
	QuizID        int    `json:"quiz_id" db:"quiz_id"`
	QuestionText  string `json:"question_text" db:"question_text"`
	OptionA       string `json:"option_a" db:"option_a"`
	OptionB       string `json:"option_b" db:"option_b"`
	OptionC       string `json:"option_c" db:"option_c"`
	OptionD       string `json:"option_d" db:"option_d"`
	CorrectAnswer string `json:"-" db:"correct_answer"`
	Explanation   string `json:"explanation,omitempty" db:"explanation"`
}

type QuizAttempt struct {
	ID          int               `json:"id" db:"id"`
	QuizID      int               `json:"quiz_id" db:"quiz_id"`
	UserID      int64             `json:"user_id" db:"user_id"`
	Score       float64           `json:"score" db:"score"`
	Answers     map[string]string `json:"answers" db:"answers"`
	CompletedAt time.Time         `json:"completed_at" db:"completed_at"`
}

// QuestionDescriptor is one question as returned by the quiz
// generator, before anything is persisted.
type QuestionDescriptor struct {
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type GenerateQuizRequest struct {
	NumQuestions int `json:"num_questions"`
}

type SubmitQuizRequest struct {
	Answers map[string]string `json:"answers"`
}

type QuestionResult struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

type QuizResult struct {
	Score          float64          `json:"score"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Results        []QuestionResult `json:"results"`
}
