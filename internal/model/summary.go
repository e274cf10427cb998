package model

import "math"

// TaskSummary is computed by the server over all of the caller's tasks.
type TaskSummary struct {
	TotalTasks           int64   `json:"totalTasks"`
	CompletedTasks       int64   `json:"completedTasks"`
	PendingTasks         int64   `json:"pendingTasks"`
	HighPriorityTasks    int64   `json:"highPriorityTasks"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

func (s TaskSummary) RoundedPercentage() int {
	return int(math.Round(s.CompletionPercentage))
}

type ReminderStatus struct {
	TaskTitle string `json:"taskTitle"`
	Sent      bool   `json:"sent"`
	Reason    string `json:"reason,omitempty"`
}

func (r ReminderStatus) Label() string {
	switch {
	case r.Sent:
		return "Sent"
	case r.Reason != "":
		return "Skipped (" + r.Reason + ")"
	default:
		return "Pending"
	}
}
