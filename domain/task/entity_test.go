package task

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Status
		wantErr bool
	}{
		{name: "empty defaults to pending", raw: "", want: StatusPending},
		{name: "pending", raw: "pending", want: StatusPending},
		{name: "in-progress", raw: "in-progress", want: StatusInProgress},
		{name: "completed", raw: "completed", want: StatusCompleted},
		{name: "unknown status", raw: "done", wantErr: true},
		{name: "wrong case", raw: "Completed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseStatus(%q) should return error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	want := time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "calendar date", raw: "2026-11-03"},
		{name: "rfc3339 midnight", raw: "2026-11-03T00:00:00.000Z"},
		{name: "rfc3339 with time", raw: "2026-11-03T17:45:00Z"},
		{name: "surrounding spaces", raw: " 2026-11-03 "},
		{name: "garbage", raw: "next tuesday", wantErr: true},
		{name: "day first", raw: "03-11-2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDueDate(%q) should return error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDueDate(%q) error = %v", tt.raw, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDueDate(%q) = %v, want %v", tt.raw, got, want)
			}
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	due := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	original := func() *Task {
		return &Task{
			ID:          "task-1",
			Title:       "Buy milk",
			Description: "2 litres",
			Status:      StatusPending,
			DueDate:     &due,
			OwnerID:     "admin-1",
		}
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		task := original()
		Patch{}.Apply(task)
		if task.Title != "Buy milk" || task.Description != "2 litres" || task.Status != StatusPending {
			t.Errorf("task changed by empty patch: %+v", task)
		}
		if task.DueDate == nil || !task.DueDate.Equal(due) {
			t.Errorf("DueDate = %v, want %v", task.DueDate, due)
		}
	})

	t.Run("sets provided fields", func(t *testing.T) {
		task := original()
		title := "Buy oat milk"
		status := StatusCompleted
		Patch{Title: &title, Status: &status}.Apply(task)
		if task.Title != title {
			t.Errorf("Title = %q, want %q", task.Title, title)
		}
		if task.Status != StatusCompleted {
			t.Errorf("Status = %q, want %q", task.Status, StatusCompleted)
		}
		if task.Description != "2 litres" {
			t.Errorf("Description = %q, want unchanged", task.Description)
		}
		if task.OwnerID != "admin-1" {
			t.Errorf("OwnerID = %q, want unchanged", task.OwnerID)
		}
	})

	t.Run("clears due date", func(t *testing.T) {
		task := original()
		Patch{ClearDueDate: true}.Apply(task)
		if task.DueDate != nil {
			t.Errorf("DueDate = %v, want nil", task.DueDate)
		}
	})
}

func TestStats_Add(t *testing.T) {
	var st Stats
	st.Add(StatusPending, 2)
	st.Add(StatusInProgress, 1)
	st.Add(StatusCompleted, 3)

	want := Stats{Total: 6, Pending: 2, InProgress: 1, Completed: 3}
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}
}
