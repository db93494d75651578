package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-be/internal/models"
)

// ActivityServiceProvider defines the interface for the activity log.
type ActivityServiceProvider interface {
	Record(subject, action, message string, taskID *string) error
	RecentForSubject(subject string, limit int) ([]models.Activity, error)
}

// ActivityService keeps a subject-scoped audit trail of logins and task
// mutations. Recording is best-effort; callers log failures and move on.
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record logs a new activity entry for a subject.
func (s *ActivityService) Record(subject, action, message string, taskID *string) error {
	entry := models.Activity{
		ID:      uuid.New().String(),
		Subject: subject,
		Action:  action,
		Message: message,
		TaskID:  taskID,
	}

	stmt, err := s.db.Prepare("INSERT INTO activity (id, subject, action, message, task_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(entry.ID, entry.Subject, entry.Action, entry.Message, entry.TaskID)
	return err
}

// RecentForSubject retrieves the subject's most recent activity entries.
// The subject predicate lives in the query; no other subject's entries
// can appear.
func (s *ActivityService) RecentForSubject(subject string, limit int) ([]models.Activity, error) {
	rows, err := s.db.Query(
		"SELECT id, subject, action, message, task_id, created_at FROM activity WHERE subject = ? ORDER BY created_at DESC LIMIT ?",
		subject, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Activity{}
	for rows.Next() {
		var entry models.Activity
		if err := rows.Scan(&entry.ID, &entry.Subject, &entry.Action, &entry.Message, &entry.TaskID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
