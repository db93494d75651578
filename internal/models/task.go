package models

import "time"

// Task represents a single dated to-do item owned by one subject.
// Owner is set once at creation from the authenticated subject and is
// never accepted from the client.
type Task struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"` // ISO calendar date, YYYY-MM-DD
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskDraft is the client payload for creating a task. Missing fields
// fall back to defaults in the service layer.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Completed   bool   `json:"completed"`
}

// TaskPatch is the client payload for a partial update. Description is a
// pointer so an explicit empty string can be told apart from an absent
// field; Completed is always applied.
type TaskPatch struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	Completed   bool    `json:"completed"`
}

// TaskAnalytics holds the per-day counts for one subject.
type TaskAnalytics struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}
