package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-be/internal/models"
	"github.com/taskdeck/taskdeck-be/internal/store"
)

var (
	// ErrTitleRequired is returned when a draft title is empty after trimming.
	ErrTitleRequired = errors.New("title is required")
	// ErrDescriptionTooLong is returned when a description exceeds 500 characters.
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters")
	// ErrInvalidDate is returned for dates that are not ISO calendar dates.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
	// ErrTaskNotFound is returned when a task does not exist for the
	// requesting subject. Tasks owned by other subjects look identical.
	ErrTaskNotFound = store.ErrTaskNotFound
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

const maxDescriptionLen = 500

const (
	defaultPriority = "medium"
	defaultCategory = "Other"
)

// TaskServiceProvider defines the interface for task services. Every
// operation takes the authenticated subject explicitly; there is no
// implicit request identity.
type TaskServiceProvider interface {
	ListTasks(subject, date string) ([]models.Task, error)
	CreateTask(subject string, draft models.TaskDraft) (models.Task, error)
	UpdateTask(subject, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(subject, id string) error
	Analytics(subject, date string) (models.TaskAnalytics, error)
	PendingDates(subject string) ([]string, error)
}

// TaskService provides business logic for task management.
type TaskService struct {
	tasks store.TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// ListTasks retrieves the subject's tasks for one date.
func (s *TaskService) ListTasks(subject, date string) ([]models.Task, error) {
	return s.tasks.FindByOwnerAndDate(subject, date)
}

// CreateTask validates a draft, applies defaults and stores the new
// task. The owner is always the authenticated subject; any owner on the
// input is ignored.
func (s *TaskService) CreateTask(subject string, draft models.TaskDraft) (models.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Task{}, ErrTitleRequired
	}
	if len(draft.Description) > maxDescriptionLen {
		return models.Task{}, ErrDescriptionTooLong
	}

	date := draft.Date
	if date == "" {
		date = time.Now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return models.Task{}, ErrInvalidDate
	}

	priority := draft.Priority
	if strings.TrimSpace(priority) == "" {
		priority = defaultPriority
	}
	category := draft.Category
	if strings.TrimSpace(category) == "" {
		category = defaultCategory
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Owner:       subject,
		Title:       title,
		Description: draft.Description,
		Date:        date,
		Priority:    priority,
		Category:    category,
		Completed:   draft.Completed,
		CreatedAt:   time.Now(),
	}

	if err := s.tasks.Save(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask resolves the task through the owner-scoped lookup and
// applies the patch. Only non-blank title/priority/category overwrite
// existing values, a present description overwrites even when empty, and
// the completed flag is always applied.
func (s *TaskService) UpdateTask(subject, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.tasks.FindByOwnerAndID(subject, id)
	if err != nil {
		return models.Task{}, err
	}

	if title := strings.TrimSpace(patch.Title); title != "" {
		task.Title = title
	}
	if patch.Description != nil {
		if len(*patch.Description) > maxDescriptionLen {
			return models.Task{}, ErrDescriptionTooLong
		}
		task.Description = *patch.Description
	}
	if strings.TrimSpace(patch.Priority) != "" {
		task.Priority = patch.Priority
	}
	if strings.TrimSpace(patch.Category) != "" {
		task.Category = patch.Category
	}
	task.Completed = patch.Completed

	if err := s.tasks.Save(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes the subject's task. The store enforces ownership in
// the delete predicate itself.
func (s *TaskService) DeleteTask(subject, id string) error {
	return s.tasks.Delete(subject, id)
}

// Analytics computes the per-day counts from two independent scoped
// counts sharing the same subject+date predicate.
func (s *TaskService) Analytics(subject, date string) (models.TaskAnalytics, error) {
	total, err := s.tasks.CountByOwnerAndDate(subject, date)
	if err != nil {
		return models.TaskAnalytics{}, err
	}
	completed, err := s.tasks.CountByOwnerAndDateAndCompleted(subject, date, true)
	if err != nil {
		return models.TaskAnalytics{}, err
	}
	return models.TaskAnalytics{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}, nil
}

// PendingDates returns the distinct dates with at least one incomplete
// task owned by the subject, ascending.
func (s *TaskService) PendingDates(subject string) ([]string, error) {
	return s.tasks.DistinctDatesWithIncomplete(subject)
}
