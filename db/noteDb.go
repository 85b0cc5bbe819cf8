package db

import (
	"database/sql"
	"fmt"
	"strings"

	"studyplan/models"

	_ "github.com/lib/pq"
)

type NoteRepository interface {
	CreateNote(note *models.LessonNote) error
	GetNoteByID(id int, userID int64) (*models.LessonNote, error)
	GetNotesByLesson(userID int64, lessonID int) ([]*models.LessonNote, error)
	GetNotesByUser(userID int64) ([]*models.LessonNote, error)
	UpdateNote(id int, userID int64, updates map[string]any) error
	DeleteNote(id int, userID int64) error
}

type PostgresNoteRepository struct {
	db *sql.DB
}

func NewPostgresNoteRepository(databaseURL string) (*PostgresNoteRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresNoteRepository{db: db}, nil
}

func (r *PostgresNoteRepository) CreateNote(note *models.LessonNote) error {
	query := `
		INSERT INTO lesson_notes (user_id, lesson_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	row := r.db.QueryRow(query, note.UserID, note.LessonID, note.Content)
	if err := row.Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *PostgresNoteRepository) GetNoteByID(id int, userID int64) (*models.LessonNote, error) {
	query := `
		SELECT id, user_id, lesson_id, content, created_at, updated_at
		FROM lesson_notes
		WHERE id = $1 AND user_id = $2`

	note := &models.LessonNote{}
	row := r.db.QueryRow(query, id, userID)

	err := row.Scan(&note.ID, &note.UserID, &note.LessonID, &note.Content,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("note with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

func (r *PostgresNoteRepository) GetNotesByLesson(userID int64, lessonID int) ([]*models.LessonNote, error) {
	query := `
		SELECT id, user_id, lesson_id, content, created_at, updated_at
		FROM lesson_notes
		WHERE user_id = $1 AND lesson_id = $2
		ORDER BY created_at DESC`

	return r.queryNotes(query, userID, lessonID)
}

func (r *PostgresNoteRepository) GetNotesByUser(userID int64) ([]*models.LessonNote, error) {
	query := `
		SELECT id, user_id, lesson_id, content, created_at, updated_at
		FROM lesson_notes
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.queryNotes(query, userID)
}

func (r *PostgresNoteRepository) queryNotes(query string, args ...any) ([]*models.LessonNote, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.LessonNote, 0)
	for rows.Next() {
		note := &models.LessonNote{}
		err := rows.Scan(&note.ID, &note.UserID, &note.LessonID, &note.Content,
			&note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over notes: %w", err)
	}

	return notes, nil
}

func (r *PostgresNoteRepository) UpdateNote(id int, userID int64, updates map[string]any) error {
	if len(updates) == 0 {
		return fmt.Errorf("no updates provided")
	}

	setParts := make([]string, 0, len(updates)+1)
	args := make([]any, 0, len(updates)+2)
	argIndex := 1

	for column, value := range updates {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}
	setParts = append(setParts, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE lesson_notes SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(setParts, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("note with id %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *PostgresNoteRepository) DeleteNote(id int, userID int64) error {
	result, err := r.db.Exec("DELETE FROM lesson_notes WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("note with id %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *PostgresNoteRepository) Close() error {
	return r.db.Close()
}
