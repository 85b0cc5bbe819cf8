package services

import (
	"errors"
	"testing"

	"studyplan/db"
	"studyplan/models"
)

type fakeQuizRepo struct {
	existing *models.Quiz
	created  *models.Quiz
	attempts []*models.QuizAttempt
}

func (f *fakeQuizRepo) CreateQuizWithQuestions(quiz *models.Quiz) error {
	quiz.ID = 1
	for i := range quiz.Questions {
		quiz.Questions[i].ID = i + 1
		quiz.Questions[i].QuizID = quiz.ID
	}
	f.created = quiz
	return nil
}

func (f *fakeQuizRepo) GetQuizByID(id int, userID int64) (*models.Quiz, error) {
	if f.existing == nil || f.existing.ID != id {
		return nil, db.ErrNotFound
	}
	return f.existing, nil
}

func (f *fakeQuizRepo) GetQuizByLessonID(lessonID int) (*models.Quiz, error) {
	if f.existing == nil || f.existing.LessonID != lessonID {
		return nil, db.ErrNotFound
	}
	return f.existing, nil
}

func (f *fakeQuizRepo) CreateAttempt(attempt *models.QuizAttempt) error {
	f.attempts = append(f.attempts, attempt)
	return nil
}

type fakeQuizGenerator struct {
	descriptors []models.QuestionDescriptor
	err         error
	calls       int
	lastCount   int
}

func (f *fakeQuizGenerator) GenerateQuizQuestions(lessonTheory, lessonTitle string, numQuestions int) ([]models.QuestionDescriptor, error) {
	f.calls++
	f.lastCount = numQuestions
	return f.descriptors, f.err
}

func TestGenerateQuizForLessonCreatesQuiz(t *testing.T) {
	lessonRepo := &fakeLessonRepo{
		lesson:  &models.Lesson{ID: 10, PlanID: 3, Title: "Goroutines", TheoryMD: "Theory text"},
		ownerID: 1,
	}
	quizRepo := &fakeQuizRepo{}
	generator := &fakeQuizGenerator{
		descriptors: []models.QuestionDescriptor{
			{Question: "Q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A"},
			{Question: "Q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "C"},
		},
	}

	service := NewQuizService(quizRepo, lessonRepo, &fakeStreakRepo{}, generator)

	quiz, created, err := service.GenerateQuizForLesson(1, 10, 0)
	if err != nil {
		t.Fatalf("GenerateQuizForLesson() returned error: %v", err)
	}

	if !created {
		t.Errorf("expected quiz to be newly created")
	}
	if quiz.Title != "Quiz: Goroutines" {
		t.Errorf("unexpected quiz title %q", quiz.Title)
	}
	if len(quiz.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(quiz.Questions))
	}
	if generator.lastCount != 5 {
		t.Errorf("expected default question count 5, got %d", generator.lastCount)
	}
	if quizRepo.created == nil {
		t.Errorf("expected quiz to be persisted")
	}
}

func TestGenerateQuizForLessonReturnsExisting(t *testing.T) {
	lessonRepo := &fakeLessonRepo{
		lesson:  &models.Lesson{ID: 10, PlanID: 3, Title: "Goroutines"},
		ownerID: 1,
	}
	quizRepo := &fakeQuizRepo{
		existing: &models.Quiz{ID: 7, LessonID: 10, Title: "Quiz: Goroutines"},
	}
	generator := &fakeQuizGenerator{}

	service := NewQuizService(quizRepo, lessonRepo, &fakeStreakRepo{}, generator)

	quiz, created, err := service.GenerateQuizForLesson(1, 10, 5)
	if err != nil {
		t.Fatalf("GenerateQuizForLesson() returned error: %v", err)
	}

	if created {
		t.Errorf("expected existing quiz, not a new one")
	}
	if quiz.ID != 7 {
		t.Errorf("expected quiz 7, got %d", quiz.ID)
	}
	if generator.calls != 0 {
		t.Errorf("expected generator to be skipped for existing quiz, got %d calls", generator.calls)
	}
}

func TestGenerateQuizForLessonUnknownLesson(t *testing.T) {
	lessonRepo := &fakeLessonRepo{ownerID: 1}
	generator := &fakeQuizGenerator{}

	service := NewQuizService(&fakeQuizRepo{}, lessonRepo, &fakeStreakRepo{}, generator)

	_, _, err := service.GenerateQuizForLesson(1, 99, 5)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown lesson, got %v", err)
	}
	if generator.calls != 0 {
		t.Errorf("expected no generation attempt for unknown lesson")
	}
}

func TestSubmitQuiz(t *testing.T) {
	quizRepo := &fakeQuizRepo{
		existing: &models.Quiz{
			ID:       7,
			LessonID: 10,
			Questions: []models.QuizQuestion{
				{ID: 1, CorrectAnswer: "A"},
				{ID: 2, CorrectAnswer: "B"},
			},
		},
	}
	streakRepo := &fakeStreakRepo{}

	service := NewQuizService(quizRepo, &fakeLessonRepo{}, streakRepo, &fakeQuizGenerator{})

	result, err := service.SubmitQuiz(1, 7, &models.SubmitQuizRequest{
		Answers: map[string]string{"1": "a", "2": "C"},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz() returned error: %v", err)
	}

	if result.Score != 50.0 {
		t.Errorf("expected score 50.0, got %v", result.Score)
	}
	if result.CorrectCount != 1 {
		t.Errorf("expected 1 correct answer, got %d", result.CorrectCount)
	}

	if len(quizRepo.attempts) != 1 {
		t.Fatalf("expected one stored attempt, got %d", len(quizRepo.attempts))
	}
	if quizRepo.attempts[0].Score != 50.0 {
		t.Errorf("expected attempt score 50.0, got %v", quizRepo.attempts[0].Score)
	}

	if len(streakRepo.recorded) != 1 || streakRepo.recorded[0].kind != models.ActivityQuiz {
		t.Errorf("expected one quiz streak activity, got %+v", streakRepo.recorded)
	}
}

func TestSubmitQuizRepeatedAttempts(t *testing.T) {
	quizRepo := &fakeQuizRepo{
		existing: &models.Quiz{
			ID:        7,
			LessonID:  10,
			Questions: []models.QuizQuestion{{ID: 1, CorrectAnswer: "A"}},
		},
	}

	service := NewQuizService(quizRepo, &fakeLessonRepo{}, &fakeStreakRepo{}, &fakeQuizGenerator{})

	if _, err := service.SubmitQuiz(1, 7, &models.SubmitQuizRequest{Answers: map[string]string{"1": "B"}}); err != nil {
		t.Fatalf("first SubmitQuiz() returned error: %v", err)
	}
	if _, err := service.SubmitQuiz(1, 7, &models.SubmitQuizRequest{Answers: map[string]string{"1": "A"}}); err != nil {
		t.Fatalf("second SubmitQuiz() returned error: %v", err)
	}

	if len(quizRepo.attempts) != 2 {
		t.Errorf("expected each submission to store its own attempt, got %d", len(quizRepo.attempts))
	}
	if quizRepo.attempts[0].Score != 0.0 || quizRepo.attempts[1].Score != 100.0 {
		t.Errorf("unexpected attempt scores: %v, %v", quizRepo.attempts[0].Score, quizRepo.attempts[1].Score)
	}
}

func TestSubmitQuizRequiresAnswers(t *testing.T) {
	service := NewQuizService(&fakeQuizRepo{}, &fakeLessonRepo{}, &fakeStreakRepo{}, &fakeQuizGenerator{})

	if _, err := service.SubmitQuiz(1, 7, &models.SubmitQuizRequest{}); err == nil {
		t.Errorf("expected error for missing answers")
	}
	if _, err := service.SubmitQuiz(1, 7, nil); err == nil {
		t.Errorf("expected error for nil request")
	}
}
