package services

import (
	"errors"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck-be/internal/database"
	"github.com/taskdeck/taskdeck-be/internal/models"
	"github.com/taskdeck/taskdeck-be/internal/store"
)

func newTestService(t *testing.T) *TaskService {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTaskService(store.NewTaskStore(db))
}

func strPtr(s string) *string { return &s }

func TestTaskService_CreateAppliesDefaults(t *testing.T) {
	s := newTestService(t)

	task, err := s.CreateTask("alice", models.TaskDraft{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	today := time.Now().Format(DateLayout)
	if task.Date != today {
		t.Errorf("date = %q, want today %q", task.Date, today)
	}
	if task.Priority != "medium" {
		t.Errorf("priority = %q, want medium", task.Priority)
	}
	if task.Category != "Other" {
		t.Errorf("category = %q, want Other", task.Category)
	}
	if task.Completed {
		t.Error("completed should default to false")
	}
	if task.Owner != "alice" {
		t.Errorf("owner = %q, want alice", task.Owner)
	}
	if task.ID == "" {
		t.Error("task id was not assigned")
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name    string
		draft   models.TaskDraft
		wantErr error
	}{
		{name: "empty title", draft: models.TaskDraft{Title: ""}, wantErr: ErrTitleRequired},
		{name: "whitespace title", draft: models.TaskDraft{Title: "   "}, wantErr: ErrTitleRequired},
		{name: "bad date", draft: models.TaskDraft{Title: "x", Date: "27-08-2026"}, wantErr: ErrInvalidDate},
		{name: "long description", draft: models.TaskDraft{Title: "x", Description: string(make([]byte, 501))}, wantErr: ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreateTask("alice", tt.draft); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskService_CreateKeepsExplicitFields(t *testing.T) {
	s := newTestService(t)

	task, err := s.CreateTask("alice", models.TaskDraft{
		Title:       "  Trim me  ",
		Description: "notes",
		Date:        "2026-12-01",
		Priority:    "high",
		Category:    "Work",
		Completed:   true,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.Title != "Trim me" {
		t.Errorf("title = %q, want trimmed", task.Title)
	}
	if task.Date != "2026-12-01" || task.Priority != "high" || task.Category != "Work" || !task.Completed {
		t.Errorf("explicit fields not preserved: %+v", task)
	}
}

func TestTaskService_UpdatePatchSemantics(t *testing.T) {
	s := newTestService(t)
	task, err := s.CreateTask("alice", models.TaskDraft{
		Title:       "Original",
		Description: "original notes",
		Priority:    "high",
		Category:    "Work",
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	// Only completed supplied: nothing else changes.
	updated, err := s.UpdateTask("alice", task.ID, models.TaskPatch{Completed: true})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if !updated.Completed {
		t.Error("completed was not applied")
	}
	if updated.Title != "Original" || updated.Description != "original notes" ||
		updated.Priority != "high" || updated.Category != "Work" {
		t.Errorf("patch overwrote untouched fields: %+v", updated)
	}

	// Blank title/priority/category are ignored; explicit empty
	// description is applied.
	updated, err = s.UpdateTask("alice", task.ID, models.TaskPatch{
		Title:       "   ",
		Description: strPtr(""),
		Completed:   true,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Title != "Original" {
		t.Errorf("blank title overwrote existing: %q", updated.Title)
	}
	if updated.Description != "" {
		t.Errorf("explicit empty description was not applied: %q", updated.Description)
	}

	// Non-blank fields overwrite.
	updated, err = s.UpdateTask("alice", task.ID, models.TaskPatch{
		Title:    "  Renamed  ",
		Priority: "low",
		Category: "Home",
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Title != "Renamed" || updated.Priority != "low" || updated.Category != "Home" {
		t.Errorf("patch fields not applied: %+v", updated)
	}
	if updated.Completed {
		t.Error("completed must follow the patch value, even back to false")
	}
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	s := newTestService(t)
	aliceTask, err := s.CreateTask("alice", models.TaskDraft{Title: "alice's", Date: "2026-08-27"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := s.CreateTask("bob", models.TaskDraft{Title: "bob's", Date: "2026-08-27"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if _, err := s.UpdateTask("bob", aliceTask.ID, models.TaskPatch{Title: "stolen"}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("cross-owner update: expected ErrTaskNotFound, got %v", err)
	}
	if err := s.DeleteTask("bob", aliceTask.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("cross-owner delete: expected ErrTaskNotFound, got %v", err)
	}

	bobTasks, err := s.ListTasks("bob", "2026-08-27")
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(bobTasks) != 1 || bobTasks[0].Title != "bob's" {
		t.Errorf("bob's list = %+v, want only bob's task", bobTasks)
	}

	bobStats, err := s.Analytics("bob", "2026-08-27")
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if bobStats.Total != 1 {
		t.Errorf("bob's analytics total = %d, want 1", bobStats.Total)
	}
}

func TestTaskService_Analytics(t *testing.T) {
	s := newTestService(t)
	const date = "2026-08-27"

	// Zero tasks: all zeros.
	stats, err := s.Analytics("alice", date)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if stats.Total != 0 || stats.Completed != 0 || stats.Pending != 0 {
		t.Errorf("empty analytics = %+v, want zeros", stats)
	}

	for i, completed := range []bool{true, false, false} {
		if _, err := s.CreateTask("alice", models.TaskDraft{
			Title: "task", Date: date, Completed: completed,
		}); err != nil {
			t.Fatalf("CreateTask(%d) error = %v", i, err)
		}
	}

	stats, err = s.Analytics("alice", date)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 || stats.Pending != 2 {
		t.Errorf("analytics = %+v, want {3 1 2}", stats)
	}
	if stats.Pending != stats.Total-stats.Completed {
		t.Errorf("pending invariant broken: %+v", stats)
	}
}

func TestTaskService_PendingDates(t *testing.T) {
	s := newTestService(t)

	drafts := []models.TaskDraft{
		{Title: "a", Date: "2026-09-02"},
		{Title: "b", Date: "2026-08-27"},
		{Title: "c", Date: "2026-08-27"}, // duplicate date, still one entry
		{Title: "d", Date: "2026-08-30", Completed: true},
	}
	for i, draft := range drafts {
		if _, err := s.CreateTask("alice", draft); err != nil {
			t.Fatalf("CreateTask(%d) error = %v", i, err)
		}
	}

	dates, err := s.PendingDates("alice")
	if err != nil {
		t.Fatalf("PendingDates() error = %v", err)
	}
	want := []string{"2026-08-27", "2026-09-02"}
	if len(dates) != len(want) {
		t.Fatalf("PendingDates() = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}
