package task

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the state of a task. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts raw input into a Status. An empty string yields the
// default pending status.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusPending, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status must be one of pending, in-progress, completed")
	}
	return s, nil
}

// Task is a to-do item owned by exactly one administrator.
type Task struct {
	ID          string     `gorm:"primaryKey;type:text" bson:"_id" json:"_id"`
	Title       string     `gorm:"not null;type:text" bson:"title" json:"title"`
	Description string     `gorm:"not null;default:'';type:text" bson:"description" json:"description"`
	Status      Status     `gorm:"not null;default:pending;type:text" bson:"status" json:"status"`
	DueDate     *time.Time `bson:"due_date,omitempty" json:"dueDate"`
	OwnerID     string     `gorm:"not null;type:text;index:idx_tasks_owner_created,priority:1" bson:"owner_id" json:"createdBy"`
	CreatedAt   time.Time  `gorm:"index:idx_tasks_owner_created,priority:2" bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Patch holds the allow-listed mutable fields of a task. Nil fields are left
// unchanged; ClearDueDate removes the due date.
type Patch struct {
	Title        *string
	Description  *string
	Status       *Status
	DueDate      *time.Time
	ClearDueDate bool
}

// Apply copies the patch onto t.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
}

// Stats counts an owner's tasks per status.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// Add records count tasks in status s.
func (st *Stats) Add(s Status, count int) {
	switch s {
	case StatusPending:
		st.Pending += count
	case StatusInProgress:
		st.InProgress += count
	case StatusCompleted:
		st.Completed += count
	}
	st.Total += count
}

const dateLayout = "2006-01-02"

// ParseDueDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp
// and returns the date at UTC midnight.
func ParseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse(dateLayout, raw); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("dueDate must be a date in YYYY-MM-DD format")
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
