package services

import (
	"errors"
	"testing"

	"studyplan/db"
	"studyplan/models"
)

type fakePlanGenerator struct {
	descriptors []models.LessonDescriptor
	err         error
	calls       int
}

func (f *fakePlanGenerator) GenerateLearningPlan(topic, level string, weeklyHours int) ([]models.LessonDescriptor, error) {
	f.calls++
	return f.descriptors, f.err
}

type fakeLessonIndexer struct {
	indexed int
	err     error
}

func (f *fakeLessonIndexer) IndexLessons(userID int64, planID int, lessons []*models.Lesson) error {
	f.indexed += len(lessons)
	return f.err
}

func TestGeneratePlan(t *testing.T) {
	planRepo := &fakePlanRepo{}
	generator := &fakePlanGenerator{
		descriptors: []models.LessonDescriptor{
			{Day: 1, Title: "Basics", TheoryMD: "# Basics", Task: "Install Go", TaskType: "practice", TimeEstimate: 45},
			{Day: 2, Title: "Types", TheoryMD: "# Types", Task: "Write a struct", TaskType: "practice", TimeEstimate: 60},
		},
	}
	indexer := &fakeLessonIndexer{}

	service := NewPlanService(planRepo, &fakeLessonRepo{}, &fakeProgressRepo{}, generator, indexer)

	plan, err := service.GeneratePlan(1, &models.GeneratePlanRequest{
		Topic:          "Go",
		KnowledgeLevel: "beginner",
		WeeklyHours:    5,
	})
	if err != nil {
		t.Fatalf("GeneratePlan() returned error: %v", err)
	}

	if plan.UserID != 1 || plan.Topic != "Go" {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if len(planRepo.createdLessons) != 2 {
		t.Fatalf("expected 2 lessons persisted, got %d", len(planRepo.createdLessons))
	}
	if planRepo.createdLessons[0].DayNumber != 1 || planRepo.createdLessons[0].Title != "Basics" {
		t.Errorf("unexpected first lesson: %+v", planRepo.createdLessons[0])
	}
	if indexer.indexed != 2 {
		t.Errorf("expected 2 lessons indexed, got %d", indexer.indexed)
	}
}

func TestGeneratePlanIndexerFailureIsNotFatal(t *testing.T) {
	planRepo := &fakePlanRepo{}
	generator := &fakePlanGenerator{
		descriptors: []models.LessonDescriptor{
			{Day: 1, Title: "Basics", TheoryMD: "# Basics", Task: "x", TaskType: "theory", TimeEstimate: 30},
		},
	}
	indexer := &fakeLessonIndexer{err: errors.New("index unavailable")}

	service := NewPlanService(planRepo, &fakeLessonRepo{}, &fakeProgressRepo{}, generator, indexer)

	if _, err := service.GeneratePlan(1, &models.GeneratePlanRequest{
		Topic:          "Go",
		KnowledgeLevel: "beginner",
		WeeklyHours:    5,
	}); err != nil {
		t.Errorf("expected plan creation to succeed despite indexer failure, got %v", err)
	}
}

func TestGeneratePlanGeneratorFailure(t *testing.T) {
	planRepo := &fakePlanRepo{}
	generator := &fakePlanGenerator{err: errors.New("model unavailable")}

	service := NewPlanService(planRepo, &fakeLessonRepo{}, &fakeProgressRepo{}, generator, nil)

	_, err := service.GeneratePlan(1, &models.GeneratePlanRequest{
		Topic:          "Go",
		KnowledgeLevel: "beginner",
		WeeklyHours:    5,
	})
	if err == nil {
		t.Fatalf("expected error when generation fails")
	}
	if planRepo.createdPlan != nil {
		t.Errorf("expected no plan persisted on generation failure")
	}
}

func TestGeneratePlanValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.GeneratePlanRequest
	}{
		{name: "nil request", req: nil},
		{name: "empty topic", req: &models.GeneratePlanRequest{Topic: "  ", KnowledgeLevel: "beginner", WeeklyHours: 5}},
		{name: "unknown knowledge level", req: &models.GeneratePlanRequest{Topic: "Go", KnowledgeLevel: "wizard", WeeklyHours: 5}},
		{name: "zero weekly hours", req: &models.GeneratePlanRequest{Topic: "Go", KnowledgeLevel: "beginner", WeeklyHours: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &fakePlanGenerator{}
			service := NewPlanService(&fakePlanRepo{}, &fakeLessonRepo{}, &fakeProgressRepo{}, generator, nil)

			if _, err := service.GeneratePlan(1, tt.req); err == nil {
				t.Errorf("expected validation error")
			}
			if generator.calls != 0 {
				t.Errorf("expected generator not to be called on invalid request")
			}
		})
	}
}

func TestGetPlanLessonsUnknownPlan(t *testing.T) {
	service := NewPlanService(&fakePlanRepo{}, &fakeLessonRepo{}, &fakeProgressRepo{}, &fakePlanGenerator{}, nil)

	_, err := service.GetPlanLessons(1, 42)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown plan, got %v", err)
	}
}

func TestGetLessonDetailIncludesCompletion(t *testing.T) {
	lessonRepo := &fakeLessonRepo{
		lesson:  &models.Lesson{ID: 10, PlanID: 3, Title: "Basics"},
		ownerID: 1,
	}
	progressRepo := &fakeProgressRepo{
		mark: &models.ProgressMark{UserID: 1, LessonID: 10, IsCompleted: true},
	}

	service := NewPlanService(&fakePlanRepo{}, lessonRepo, progressRepo, &fakePlanGenerator{}, nil)

	detail, err := service.GetLessonDetail(1, 10)
	if err != nil {
		t.Fatalf("GetLessonDetail() returned error: %v", err)
	}
	if !detail.IsCompleted {
		t.Errorf("expected lesson detail to report completion")
	}
}

func TestGetLessonDetailWithoutMark(t *testing.T) {
	lessonRepo := &fakeLessonRepo{
		lesson:  &models.Lesson{ID: 10, PlanID: 3, Title: "Basics"},
		ownerID: 1,
	}

	service := NewPlanService(&fakePlanRepo{}, lessonRepo, &fakeProgressRepo{}, &fakePlanGenerator{}, nil)

	detail, err := service.GetLessonDetail(1, 10)
	if err != nil {
		t.Fatalf("GetLessonDetail() returned error: %v", err)
	}
	if detail.IsCompleted {
		t.Errorf("expected unmarked lesson to report incomplete")
	}
}
