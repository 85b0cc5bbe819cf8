package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"studyplan/db"
	"studyplan/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type NoteService struct {
	noteRepo   db.NoteRepository
	lessonRepo db.LessonRepository
	streakRepo db.StreakRepository
}

func NewNoteService(noteRepo db.NoteRepository, lessonRepo db.LessonRepository, streakRepo db.StreakRepository) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		lessonRepo: lessonRepo,
		streakRepo: streakRepo,
	}
}

// CreateNote stores a note on a lesson the user owns and records a
// note activity on today's streak. Deleting the note later does not
// undo the streak contribution.
func (s *NoteService) CreateNote(userID int64, lessonID int, req *models.CreateNoteRequest) (*models.LessonNote, error) {
	log.Printf("[INFO] Creating note on lesson %d for user %d", lessonID, userID)

	if err := s.validateCreateRequest(req); err != nil {
		log.Printf("[ERROR] Note creation validation failed: %v", err)
		return nil, err
	}

	if _, err := s.lessonRepo.GetLessonByID(lessonID, userID); err != nil {
		log.Printf("[ERROR] Failed to get lesson %d: %v", lessonID, err)
		return nil, err
	}

	note := &models.LessonNote{
		UserID:   userID,
		LessonID: lessonID,
		Content:  strings.TrimSpace(req.Content),
	}

	if err := s.noteRepo.CreateNote(note); err != nil {
		log.Printf("[ERROR] Failed to create note: %v", err)
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	today := time.Now().UTC()
	if err := s.streakRepo.RecordActivity(userID, today, models.ActivityNote, 0); err != nil {
		log.Printf("[ERROR] Failed to record note activity for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to record note activity: %w", err)
	}

	log.Printf("[INFO] Successfully created note %d", note.ID)
	return note, nil
}

func (s *NoteService) GetLessonNotes(userID int64, lessonID int) ([]*models.LessonNote, error) {
	log.Printf("[INFO] Listing notes on lesson %d for user %d", lessonID, userID)

	notes, err := s.noteRepo.GetNotesByLesson(userID, lessonID)
	if err != nil {
		log.Printf("[ERROR] Failed to get notes for lesson %d: %v", lessonID, err)
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}

	return notes, nil
}

func (s *NoteService) GetNoteByID(userID int64, id int) (*models.LessonNote, error) {
	log.Printf("[INFO] Getting note %d for user %d", id, userID)

	note, err := s.noteRepo.GetNoteByID(id, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get note %d: %v", id, err)
		return nil, err
	}

	return note, nil
}

func (s *NoteService) UpdateNote(userID int64, id int, req *models.UpdateNoteRequest) (*models.LessonNote, error) {
	log.Printf("[INFO] Updating note %d for user %d", id, userID)

	if req == nil || req.Content == nil {
		return nil, fmt.Errorf("at least one field must be provided for update")
	}

	trimmedContent := strings.TrimSpace(*req.Content)
	if trimmedContent == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	updates := map[string]any{"content": trimmedContent}
	if err := s.noteRepo.UpdateNote(id, userID, updates); err != nil {
		log.Printf("[ERROR] Failed to update note %d: %v", id, err)
		return nil, err
	}

	log.Printf("[INFO] Successfully updated note %d", id)
	return s.noteRepo.GetNoteByID(id, userID)
}

func (s *NoteService) DeleteNote(userID int64, id int) error {
	log.Printf("[INFO] Deleting note %d for user %d", id, userID)

	if err := s.noteRepo.DeleteNote(id, userID); err != nil {
		log.Printf("[ERROR] Failed to delete note %d: %v", id, err)
		return err
	}

	log.Printf("[INFO] Successfully deleted note %d", id)
	return nil
}

// SearchNotes fuzzy-matches the user's notes against the search terms.
func (s *NoteService) SearchNotes(userID int64, searchTerms []string) ([]*models.LessonNote, error) {
	log.Printf("[INFO] Searching notes of user %d with %d terms", userID, len(searchTerms))

	notes, err := s.noteRepo.GetNotesByUser(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get notes for search: %v", err)
		return nil, fmt.Errorf("failed to get notes for search: %w", err)
	}

	if len(searchTerms) == 0 {
		return notes, nil
	}

	var matchingNotes []*models.LessonNote
	for _, note := range notes {
		if noteMatchesSearch(note.Content, searchTerms) {
			matchingNotes = append(matchingNotes, note)
		}
	}

	log.Printf("[INFO] Found %d notes matching search criteria", len(matchingNotes))
	return matchingNotes, nil
}

func noteMatchesSearch(content string, searchTerms []string) bool {
	words := strings.Fields(strings.ToLower(content))

	cleanWords := make([]string, 0, len(words))
	for _, word := range words {
		cleanWord := strings.Trim(word, ".,!?;:()[]{}\"'")
		if len(cleanWord) > 0 {
			cleanWords = append(cleanWords, cleanWord)
		}
	}

	for _, term := range searchTerms {
		if fuzzy.MatchFold(term, content) {
			return true
		}

		if len(fuzzy.Find(term, cleanWords)) > 0 {
			return true
		}
	}

	return false
}

func (s *NoteService) validateCreateRequest(req *models.CreateNoteRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}

	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("content is required")
	}

	return nil
}
