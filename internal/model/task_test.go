package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
)

var today = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func due(t time.Time) *model.Timestamp { return model.NewTimestamp(t) }

func TestPriority_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority model.Priority
		want     bool
	}{
		{"low", model.PriorityLow, true},
		{"medium", model.PriorityMedium, true},
		{"high", model.PriorityHigh, true},
		{"empty", model.Priority(""), false},
		{"lowercase", model.Priority("high"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.IsValid(); got != tt.want {
				t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	tests := []struct {
		name string
		task model.Task
		want bool
	}{
		{"completed and long past", model.Task{Completed: true, DueDate: due(today.AddDate(-1, 0, 0))}, false},
		{"completed and due yesterday", model.Task{Completed: true, DueDate: due(today.AddDate(0, 0, -1))}, false},
		{"pending and due yesterday", model.Task{DueDate: due(today.AddDate(0, 0, -1))}, true},
		{"pending and due yesterday late evening", model.Task{DueDate: due(time.Date(2026, 10, 13, 23, 59, 0, 0, time.UTC))}, true},
		{"pending and due earlier today", model.Task{DueDate: due(time.Date(2026, 10, 14, 0, 1, 0, 0, time.UTC))}, false},
		{"pending and due tomorrow", model.Task{DueDate: due(today.AddDate(0, 0, 1))}, false},
		{"pending without due date", model.Task{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(today); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_IsDueTodayOrOverdue(t *testing.T) {
	if !(model.Task{DueDate: due(today)}).IsDueTodayOrOverdue(today) {
		t.Error("expected task due today to be selected")
	}
	if (model.Task{DueDate: due(today.AddDate(0, 0, 1))}).IsDueTodayOrOverdue(today) {
		t.Error("expected task due tomorrow not to be selected")
	}
	if (model.Task{DueDate: due(today), Completed: true}).IsDueTodayOrOverdue(today) {
		t.Error("expected completed task not to be selected")
	}
}

func TestTask_MutableOmitsIdentity(t *testing.T) {
	task := model.Task{
		ID:           "42",
		Title:        "Write report",
		Description:  "Q3",
		Priority:     model.PriorityHigh,
		DueDate:      due(today),
		CreatedAt:    due(today.AddDate(0, 0, -3)),
		ReminderSent: true,
	}

	b, err := json.Marshal(task.Mutable())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"title", "description", "priority", "completed", "dueDate"}
	if len(fields) != len(want) {
		t.Errorf("expected %d fields, got %v", len(want), fields)
	}
	for _, k := range want {
		if _, ok := fields[k]; !ok {
			t.Errorf("expected field %q in %s", k, b)
		}
	}
	for _, k := range []string{"id", "createdAt", "reminderSent"} {
		if _, ok := fields[k]; ok {
			t.Errorf("field %q must not be sent, got %s", k, b)
		}
	}
}

func TestSortByDueDate(t *testing.T) {
	tasks := []model.Task{
		{ID: "none-1"},
		{ID: "late", DueDate: due(today.AddDate(0, 0, 5))},
		{ID: "none-2", DueDate: &model.Timestamp{}},
		{ID: "early", DueDate: due(today.AddDate(0, 0, -5))},
		{ID: "mid", DueDate: due(today)},
	}

	got := model.SortByDueDate(tasks)

	wantOrder := []model.ID{"early", "mid", "late", "none-1", "none-2"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if tasks[0].ID != "none-1" {
		t.Error("expected input slice to be left untouched")
	}
}

func TestIntersectByID(t *testing.T) {
	completed := []model.Task{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	high := []model.Task{{ID: "3"}, {ID: "4"}, {ID: "1"}}

	got := model.IntersectByID(completed, high)

	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("expected [1 3], got %v", got)
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  model.ID
	}{
		{"number", `{"id":17}`, "17"},
		{"string", `{"id":"a-b"}`, "a-b"},
		{"null", `{"id":null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				ID model.ID `json:"id"`
			}
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if v.ID != tt.want {
				t.Errorf("got %q, want %q", v.ID, tt.want)
			}
		})
	}
}

func TestID_IsMissing(t *testing.T) {
	for _, id := range []model.ID{"", "undefined", "null"} {
		if !id.IsMissing() {
			t.Errorf("expected %q to be missing", id)
		}
	}
	if model.ID("7").IsMissing() {
		t.Error("expected 7 to be present")
	}
}
