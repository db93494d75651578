package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck-be/internal/models"
)

// ErrTaskNotFound is returned when no task matches an owner-scoped
// lookup. A task owned by someone else is indistinguishable from a task
// that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the persistence contract for tasks. Every query that can
// reach another user's data carries the owner predicate in SQL; scoping
// is never applied as a post-filter.
type TaskStore interface {
	FindByOwnerAndID(owner, id string) (models.Task, error)
	FindByOwnerAndDate(owner, date string) ([]models.Task, error)
	CountByOwnerAndDate(owner, date string) (int64, error)
	CountByOwnerAndDateAndCompleted(owner, date string, completed bool) (int64, error)
	DistinctDatesWithIncomplete(owner string) ([]string, error)
	Save(task models.Task) error
	Delete(owner, id string) error
}

// SQLTaskStore is the SQLite-backed TaskStore.
type SQLTaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a new SQLTaskStore.
func NewTaskStore(db *sql.DB) *SQLTaskStore {
	return &SQLTaskStore{db: db}
}

const taskColumns = "id, owner, title, description, task_date, priority, category, completed, created_at"

// scanTask is a helper to scan a task from a row or rows object.
func scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	var desc sql.NullString
	err := scanner.Scan(
		&task.ID, &task.Owner, &task.Title, &desc, &task.Date,
		&task.Priority, &task.Category, &task.Completed, &task.CreatedAt,
	)
	if err != nil {
		return task, err
	}
	task.Description = desc.String
	return task, nil
}

// FindByOwnerAndID retrieves a single task scoped to its owner.
func (s *SQLTaskStore) FindByOwnerAndID(owner, id string) (models.Task, error) {
	row := s.db.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND owner = ?", id, owner)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// FindByOwnerAndDate retrieves all of an owner's tasks for one date.
func (s *SQLTaskStore) FindByOwnerAndDate(owner, date string) ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE owner = ? AND task_date = ? ORDER BY created_at", owner, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CountByOwnerAndDate counts an owner's tasks for one date.
func (s *SQLTaskStore) CountByOwnerAndDate(owner, date string) (int64, error) {
	var count int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM tasks WHERE owner = ? AND task_date = ?", owner, date).Scan(&count)
	return count, err
}

// CountByOwnerAndDateAndCompleted counts an owner's tasks for one date
// filtered by completion state.
func (s *SQLTaskStore) CountByOwnerAndDateAndCompleted(owner, date string, completed bool) (int64, error) {
	var count int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM tasks WHERE owner = ? AND task_date = ? AND completed = ?",
		owner, date, completed).Scan(&count)
	return count, err
}

// DistinctDatesWithIncomplete returns the distinct dates on which the
// owner has at least one incomplete task, in ascending order. ISO dates
// sort chronologically as text.
func (s *SQLTaskStore) DistinctDatesWithIncomplete(owner string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT task_date FROM tasks WHERE owner = ? AND completed = 0 ORDER BY task_date ASC", owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// Save inserts the task or, if the id already exists, overwrites its
// mutable fields. Owner and creation time never change on conflict.
func (s *SQLTaskStore) Save(task models.Task) error {
	const query = `
		INSERT INTO tasks(id, owner, title, description, task_date, priority, category, completed)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			task_date = excluded.task_date,
			priority = excluded.priority,
			category = excluded.category,
			completed = excluded.completed`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		task.ID, task.Owner, task.Title, task.Description,
		task.Date, task.Priority, task.Category, task.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Delete removes a task scoped to its owner. The owner predicate makes
// the ownership check and the removal a single atomic statement.
func (s *SQLTaskStore) Delete(owner, id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND owner = ?", id, owner)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
