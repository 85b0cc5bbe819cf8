package services

import (
	"testing"

	"studyplan/models"
)

func TestGradeSubmission(t *testing.T) {
	questions := []models.QuizQuestion{
		{ID: 1, QuestionText: "Q1", CorrectAnswer: "A"},
		{ID: 2, QuestionText: "Q2", CorrectAnswer: "B"},
		{ID: 3, QuestionText: "Q3", CorrectAnswer: "C"},
	}

	tests := []struct {
		name            string
		questions       []models.QuizQuestion
		answers         map[string]string
		expectedScore   float64
		expectedCorrect int
	}{
		{
			name:            "all answers correct",
			questions:       questions,
			answers:         map[string]string{"1": "A", "2": "B", "3": "C"},
			expectedScore:   100,
			expectedCorrect: 3,
		},
		{
			name:            "lowercase answers match case-insensitively",
			questions:       questions,
			answers:         map[string]string{"1": "a", "2": "b", "3": "c"},
			expectedScore:   100,
			expectedCorrect: 3,
		},
		{
			name:            "two of three correct rounds to 66.67",
			questions:       questions,
			answers:         map[string]string{"1": "a", "2": "D", "3": "C"},
			expectedScore:   66.67,
			expectedCorrect: 2,
		},
		{
			name:            "missing answers count as incorrect",
			questions:       questions,
			answers:         map[string]string{"1": "A"},
			expectedScore:   33.33,
			expectedCorrect: 1,
		},
		{
			name:            "empty answer map scores zero",
			questions:       questions,
			answers:         map[string]string{},
			expectedScore:   0,
			expectedCorrect: 0,
		},
		{
			name:            "quiz without questions scores zero",
			questions:       []models.QuizQuestion{},
			answers:         map[string]string{"1": "A"},
			expectedScore:   0,
			expectedCorrect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gradeSubmission(tt.questions, tt.answers)

			if result.Score != tt.expectedScore {
				t.Errorf("gradeSubmission() score = %v, expected %v", result.Score, tt.expectedScore)
			}
			if result.CorrectCount != tt.expectedCorrect {
				t.Errorf("gradeSubmission() correct count = %d, expected %d", result.CorrectCount, tt.expectedCorrect)
			}
			if result.TotalQuestions != len(tt.questions) {
				t.Errorf("gradeSubmission() total questions = %d, expected %d", result.TotalQuestions, len(tt.questions))
			}
			if len(result.Results) != len(tt.questions) {
				t.Errorf("gradeSubmission() returned %d per-question results, expected %d", len(result.Results), len(tt.questions))
			}
		})
	}
}

func TestGradeSubmissionPerQuestionResults(t *testing.T) {
	questions := []models.QuizQuestion{
		{ID: 7, QuestionText: "What is a goroutine?", CorrectAnswer: "B", Explanation: "Lightweight thread"},
		{ID: 8, QuestionText: "What does defer do?", CorrectAnswer: "C"},
	}

	result := gradeSubmission(questions, map[string]string{"7": "b"})

	if !result.Results[0].IsCorrect {
		t.Errorf("expected question 7 to be graded correct")
	}
	if result.Results[0].UserAnswer != "B" {
		t.Errorf("expected user answer to be normalized to B, got %q", result.Results[0].UserAnswer)
	}
	if result.Results[0].Explanation != "Lightweight thread" {
		t.Errorf("expected explanation to be carried through, got %q", result.Results[0].Explanation)
	}

	if result.Results[1].IsCorrect {
		t.Errorf("expected unanswered question 8 to be graded incorrect")
	}
	if result.Results[1].UserAnswer != "" {
		t.Errorf("expected empty user answer for unanswered question, got %q", result.Results[1].UserAnswer)
	}
	if result.Results[1].CorrectAnswer != "C" {
		t.Errorf("expected correct answer C in result, got %q", result.Results[1].CorrectAnswer)
	}
}
