package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := model.NewTimestamp(time.Date(2026, 10, 14, 9, 5, 0, 0, time.FixedZone("KST", 9*3600)))

	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-10-14T00:05:00.000Z"` {
		t.Errorf("got %s", b)
	}

	var task model.Task
	b, _ = json.Marshal(task)
	var fields map[string]any
	_ = json.Unmarshal(b, &fields)
	if v, ok := fields["dueDate"]; !ok || v != nil {
		t.Errorf("expected explicit null dueDate, got %s", b)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-10-14T10:00:00Z", time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)},
		{"millis", "2026-10-14T10:00:00.250Z", time.Date(2026, 10, 14, 10, 0, 0, 250e6, time.UTC)},
		{"local date-time", "2026-10-14T10:00:00", time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)},
		{"date", "2026-10-14", time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got.Time, tt.want)
			}
		})
	}

	if _, err := model.ParseTimestamp("next tuesday"); err == nil {
		t.Error("expected error for unparseable input")
	}
	if got, err := model.ParseTimestamp(""); err != nil || got != nil {
		t.Errorf("expected nil timestamp for empty input, got %v, %v", got, err)
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"instant", `"2026-10-14T10:00:00Z"`, time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC), false},
		{"escaped plus offset", `"2026-10-14T19:00:00\u002B09:00"`, time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC), false},
		{"empty string", `""`, time.Time{}, false},
		{"null", `null`, time.Time{}, false},
		{"number", `1760432400`, time.Time{}, true},
		{"bare word", `today`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts model.Timestamp
			err := ts.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s, got %v", tt.input, ts.Time)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("got %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestFilters(t *testing.T) {
	if f, ok := model.ParsePriorityFilter("high"); !ok || f != "HIGH" {
		t.Errorf("got %q, %v", f, ok)
	}
	if f, ok := model.ParsePriorityFilter(""); !ok || !f.IsAll() {
		t.Errorf("expected ALL, got %q", f)
	}
	if _, ok := model.ParsePriorityFilter("urgent"); ok {
		t.Error("expected urgent to be rejected")
	}
	if f, ok := model.ParseCompletionFilter("done"); !ok || !f.Completed() {
		t.Errorf("got %q, %v", f, ok)
	}
	if f, ok := model.ParseCompletionFilter("pending"); !ok || f != model.CompletionPending {
		t.Errorf("got %q, %v", f, ok)
	}
}

func TestReminderStatus_Label(t *testing.T) {
	tests := []struct {
		status model.ReminderStatus
		want   string
	}{
		{model.ReminderStatus{Sent: true}, "Sent"},
		{model.ReminderStatus{Reason: "no due date"}, "Skipped (no due date)"},
		{model.ReminderStatus{}, "Pending"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
