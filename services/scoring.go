package services

import (
	"strconv"
	"strings"

	"studyplan/models"
)

// gradeSubmission scores an answer map against the quiz's questions.
// Answers are matched case-insensitively; a question with no submitted
// answer scores as incorrect with an empty answer. A quiz with zero
// questions grades to zero rather than dividing by zero.
func gradeSubmission(questions []models.QuizQuestion, answers map[string]string) models.QuizResult {
	totalQuestions := len(questions)
	correctCount := 0
	results := make([]models.QuestionResult, 0, totalQuestions)

	for _, question := range questions {
		userAnswer := strings.ToUpper(answers[strconv.Itoa(question.ID)])
		isCorrect := userAnswer == strings.ToUpper(question.CorrectAnswer)
		if isCorrect {
			correctCount++
		}

		results = append(results, models.QuestionResult{
			QuestionID:    question.ID,
			Question:      question.QuestionText,
			UserAnswer:    userAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   question.Explanation,
		})
	}

	score := 0.0
	if totalQuestions > 0 {
		score = round2(float64(correctCount) / float64(totalQuestions) * 100)
	}

	return models.QuizResult{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		Results:        results,
	}
}
