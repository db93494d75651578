package models

import "time"

// Activity represents an audit entry for an action performed by a subject.
type Activity struct {
	ID        string    `json:"id"`
	Subject   string    `json:"-"`
	Action    string    `json:"action"` // e.g. "auth.login", "task.create"
	Message   string    `json:"message"`
	TaskID    *string   `json:"taskId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
