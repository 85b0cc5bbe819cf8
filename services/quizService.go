package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"studyplan/db"
	"studyplan/models"
)

const defaultQuestionCount = 5

// QuizGenerator produces question descriptors from lesson theory.
type QuizGenerator interface {
	GenerateQuizQuestions(lessonTheory, lessonTitle string, numQuestions int) ([]models.QuestionDescriptor, error)
}

type QuizService struct {
	quizRepo   db.QuizRepository
	lessonRepo db.LessonRepository
	streakRepo db.StreakRepository
	generator  QuizGenerator
}

func NewQuizService(quizRepo db.QuizRepository, lessonRepo db.LessonRepository, streakRepo db.StreakRepository, generator QuizGenerator) *QuizService {
	return &QuizService{
		quizRepo:   quizRepo,
		lessonRepo: lessonRepo,
		streakRepo: streakRepo,
		generator:  generator,
	}
}

// GenerateQuizForLesson returns the lesson's existing quiz if one was
// already generated, otherwise generates questions from the lesson
// theory and stores quiz plus questions as a single unit.
func (s *QuizService) GenerateQuizForLesson(userID int64, lessonID, numQuestions int) (*models.Quiz, bool, error) {
	log.Printf("[INFO] Starting quiz generation for lesson %d, user %d", lessonID, userID)

	lesson, err := s.lessonRepo.GetLessonByID(lessonID, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get lesson %d: %v", lessonID, err)
		return nil, false, err
	}

	existing, err := s.quizRepo.GetQuizByLessonID(lessonID)
	if err == nil {
		log.Printf("[INFO] Quiz %d already exists for lesson %d, returning it", existing.ID, lessonID)
		return existing, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		log.Printf("[ERROR] Failed to look up quiz for lesson %d: %v", lessonID, err)
		return nil, false, err
	}

	if numQuestions <= 0 {
		numQuestions = defaultQuestionCount
	}

	descriptors, err := s.generator.GenerateQuizQuestions(lesson.TheoryMD, lesson.Title, numQuestions)
	if err != nil {
		log.Printf("[ERROR] Quiz generation failed for lesson %d: %v", lessonID, err)
		return nil, false, fmt.Errorf("failed to generate quiz: %w", err)
	}

	quiz := &models.Quiz{
		LessonID:  lessonID,
		Title:     "Quiz: " + lesson.Title,
		Questions: make([]models.QuizQuestion, 0, len(descriptors)),
	}
	for _, d := range descriptors {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			QuestionText:  d.Question,
			OptionA:       d.OptionA,
			OptionB:       d.OptionB,
			OptionC:       d.OptionC,
			OptionD:       d.OptionD,
			CorrectAnswer: d.CorrectAnswer,
			Explanation:   d.Explanation,
		})
	}

	if err := s.quizRepo.CreateQuizWithQuestions(quiz); err != nil {
		log.Printf("[ERROR] Failed to store quiz for lesson %d: %v", lessonID, err)
		return nil, false, fmt.Errorf("failed to store quiz: %w", err)
	}

	log.Printf("[INFO] Created quiz %d with %d questions for lesson %d", quiz.ID, len(quiz.Questions), lessonID)
	return quiz, true, nil
}

func (s *QuizService) GetQuiz(userID int64, quizID int) (*models.Quiz, error) {
	log.Printf("[INFO] Getting quiz %d for user %d", quizID, userID)

	quiz, err := s.quizRepo.GetQuizByID(quizID, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get quiz %d: %v", quizID, err)
		return nil, err
	}

	return quiz, nil
}

// SubmitQuiz grades the submitted answers, stores a new attempt (every
// submission creates one; prior attempts are never touched), and
// records a quiz activity on today's streak.
func (s *QuizService) SubmitQuiz(userID int64, quizID int, req *models.SubmitQuizRequest) (*models.QuizResult, error) {
	log.Printf("[INFO] Submitting quiz %d for user %d", quizID, userID)

	if req == nil || req.Answers == nil {
		return nil, fmt.Errorf("answers are required")
	}

	quiz, err := s.quizRepo.GetQuizByID(quizID, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get quiz %d: %v", quizID, err)
		return nil, err
	}

	result := gradeSubmission(quiz.Questions, req.Answers)

	attempt := &models.QuizAttempt{
		QuizID:  quizID,
		UserID:  userID,
		Score:   result.Score,
		Answers: req.Answers,
	}
	if err := s.quizRepo.CreateAttempt(attempt); err != nil {
		log.Printf("[ERROR] Failed to store attempt for quiz %d: %v", quizID, err)
		return nil, fmt.Errorf("failed to store quiz attempt: %w", err)
	}

	today := time.Now().UTC()
	if err := s.streakRepo.RecordActivity(userID, today, models.ActivityQuiz, 0); err != nil {
		log.Printf("[ERROR] Failed to record quiz activity for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to record quiz activity: %w", err)
	}

	log.Printf("[INFO] Quiz %d submitted: %d/%d correct, score %.2f", quizID, result.CorrectCount, result.TotalQuestions, result.Score)
	return &result, nil
}
