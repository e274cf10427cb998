package model

import (
	"sort"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ParsePriority accepts any letter case.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}

type Task struct {
	ID           ID         `json:"id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      *Timestamp `json:"dueDate"`
	Priority     Priority   `json:"priority"`
	Completed    bool       `json:"completed"`
	CreatedAt    *Timestamp `json:"createdAt,omitempty"`
	ReminderSent bool       `json:"reminderSent"`
}

// TaskUpdate is the mutable field subset sent on update. Identifier and
// audit fields are deliberately absent.
type TaskUpdate struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *Timestamp `json:"dueDate"`
}

func (t Task) Persisted() bool {
	return !t.ID.IsMissing()
}

func (t Task) Mutable() TaskUpdate {
	return TaskUpdate{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
	}
}

// IsOverdue reports whether the task is not completed and due strictly
// before the day of now. Both sides are truncated to midnight in now's
// location.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	return DateOnly(t.DueDate.Time, now.Location()).Before(DateOnly(now, now.Location()))
}

// IsDueTodayOrOverdue matches the server-side overdue listing, which
// includes tasks due today.
func (t Task) IsDueTodayOrOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	return !DateOnly(t.DueDate.Time, now.Location()).After(DateOnly(now, now.Location()))
}

func DateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SortByDueDate returns a copy sorted ascending by due date. Tasks without
// a due date keep their relative order and go after every dated task.
func SortByDueDate(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		aDated := a != nil && !a.IsZero()
		bDated := b != nil && !b.IsZero()
		switch {
		case aDated && bDated:
			return a.Before(b.Time)
		case aDated:
			return true
		default:
			return false
		}
	})
	return out
}

// IntersectByID keeps the tasks of a whose identifier also appears in b,
// in a's order.
func IntersectByID(a, b []Task) []Task {
	ids := make(map[ID]struct{}, len(b))
	for _, t := range b {
		ids[t.ID] = struct{}{}
	}
	out := make([]Task, 0, len(a))
	for _, t := range a {
		if _, ok := ids[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}
