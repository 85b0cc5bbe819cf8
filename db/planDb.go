package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"studyplan/models"

	_ "github.com/lib/pq"
)

type PlanRepository interface {
	CreatePlanWithLessons(plan *models.LearningPlan, lessons []*models.Lesson) error
	GetPlanByID(id int, userID int64) (*models.LearningPlan, error)
	GetPlansByUser(userID int64) ([]*models.LearningPlan, error)
	UpdatePlanProgress(planID int, progress float64) error
}

type PostgresPlanRepository struct {
	db *sql.DB
}

func NewPostgresPlanRepository(databaseURL string) (*PostgresPlanRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresPlanRepository{db: db}, nil
}

// CreatePlanWithLessons inserts the plan and all its lessons in one
// transaction. A failure on any lesson rolls everything back, so a
// half-generated plan never reaches storage.
func (r *PostgresPlanRepository) CreatePlanWithLessons(plan *models.LearningPlan, lessons []*models.Lesson) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	planQuery := `
		INSERT INTO learning_plans (user_id, topic, knowledge_level, weekly_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, progress, created_at`

	row := tx.QueryRow(planQuery, plan.UserID, plan.Topic, plan.KnowledgeLevel, plan.WeeklyHours)
	if err := row.Scan(&plan.ID, &plan.Progress, &plan.CreatedAt); err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	lessonQuery := `
		INSERT INTO lessons (plan_id, title, theory_md, task, lesson_type, time_estimate, day_number, extra_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	for _, lesson := range lessons {
		linksJSON, err := json.Marshal(lesson.ExtraLinks)
		if err != nil {
			return fmt.Errorf("failed to marshal extra links: %w", err)
		}

		lesson.PlanID = plan.ID
		row := tx.QueryRow(lessonQuery,
			plan.ID,
			lesson.Title,
			lesson.TheoryMD,
			lesson.Task,
			lesson.LessonType,
			lesson.TimeEstimate,
			lesson.DayNumber,
			linksJSON,
		)
		if err := row.Scan(&lesson.ID); err != nil {
			return fmt.Errorf("failed to create lesson for day %d: %w", lesson.DayNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan creation: %w", err)
	}

	return nil
}

func (r *PostgresPlanRepository) GetPlanByID(id int, userID int64) (*models.LearningPlan, error) {
	query := `
		SELECT id, user_id, topic, knowledge_level, weekly_hours, progress, created_at
		FROM learning_plans
		WHERE id = $1 AND user_id = $2`

	plan := &models.LearningPlan{}
	row := r.db.QueryRow(query, id, userID)

	err := row.Scan(&plan.ID, &plan.UserID, &plan.Topic, &plan.KnowledgeLevel,
		&plan.WeeklyHours, &plan.Progress, &plan.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return plan, nil
}

func (r *PostgresPlanRepository) GetPlansByUser(userID int64) ([]*models.LearningPlan, error) {
	query := `
		SELECT id, user_id, topic, knowledge_level, weekly_hours, progress, created_at
		FROM learning_plans
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := make([]*models.LearningPlan, 0)
	for rows.Next() {
		plan := &models.LearningPlan{}
		err := rows.Scan(&plan.ID, &plan.UserID, &plan.Topic, &plan.KnowledgeLevel,
			&plan.WeeklyHours, &plan.Progress, &plan.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over plans: %w", err)
	}

	return plans, nil
}

func (r *PostgresPlanRepository) UpdatePlanProgress(planID int, progress float64) error {
	query := "UPDATE learning_plans SET progress = $1 WHERE id = $2"

	result, err := r.db.Exec(query, progress, planID)
	if err != nil {
		return fmt.Errorf("failed to update plan progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("plan with id %d: %w", planID, ErrNotFound)
	}

	return nil
}

func (r *PostgresPlanRepository) Close() error {
	return r.db.Close()
}
