package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"studyplan/models"

	_ "github.com/lib/pq"
)

type LessonRepository interface {
	GetLessonByID(id int, userID int64) (*models.Lesson, error)
	GetLessonSummaries(planID int, userID int64) ([]models.LessonSummary, error)
	CountByPlan(planID int) (int, error)
}

type PostgresLessonRepository struct {
	db *sql.DB
}

func NewPostgresLessonRepository(databaseURL string) (*PostgresLessonRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresLessonRepository{db: db}, nil
}

// GetLessonByID checks existence and plan ownership in a single query
// so the caller never learns whether a foreign lesson exists.
func (r *PostgresLessonRepository) GetLessonByID(id int, userID int64) (*models.Lesson, error) {
	query := `
		SELECT l.id, l.plan_id, l.title, l.theory_md, l.task, l.lesson_type,
		       l.time_estimate, l.day_number, l.extra_links
		FROM lessons l
		JOIN learning_plans p ON l.plan_id = p.id
		WHERE l.id = $1 AND p.user_id = $2`

	lesson := &models.Lesson{}
	var linksJSON []byte
	row := r.db.QueryRow(query, id, userID)

	err := row.Scan(&lesson.ID, &lesson.PlanID, &lesson.Title, &lesson.TheoryMD,
		&lesson.Task, &lesson.LessonType, &lesson.TimeEstimate, &lesson.DayNumber, &linksJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lesson with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if err := json.Unmarshal(linksJSON, &lesson.ExtraLinks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extra links: %w", err)
	}

	return lesson, nil
}

func (r *PostgresLessonRepository) GetLessonSummaries(planID int, userID int64) ([]models.LessonSummary, error) {
	query := `
		SELECT l.id, l.title, l.day_number, l.time_estimate, l.lesson_type,
		       COALESCE(up.is_completed, FALSE)
		FROM lessons l
		LEFT JOIN user_progress up ON up.lesson_id = l.id AND up.user_id = $2
		WHERE l.plan_id = $1
		ORDER BY l.day_number, l.id`

	rows, err := r.db.Query(query, planID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.LessonSummary, 0)
	for rows.Next() {
		var s models.LessonSummary
		err := rows.Scan(&s.ID, &s.Title, &s.DayNumber, &s.TimeEstimate, &s.LessonType, &s.IsCompleted)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over lessons: %w", err)
	}

	return summaries, nil
}

func (r *PostgresLessonRepository) CountByPlan(planID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM lessons WHERE plan_id = $1", planID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}

func (r *PostgresLessonRepository) Close() error {
	return r.db.Close()
}
