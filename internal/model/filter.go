package model

import "strings"

const FilterAll = "ALL"

// PriorityFilter is ALL or one of the priorities.
type PriorityFilter string

func (f PriorityFilter) IsAll() bool { return f == "" || f == FilterAll }

func (f PriorityFilter) Priority() Priority { return Priority(f) }

func ParsePriorityFilter(s string) (PriorityFilter, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == FilterAll {
		return FilterAll, true
	}
	if p, ok := ParsePriority(s); ok {
		return PriorityFilter(p), true
	}
	return "", false
}

// CompletionFilter is ALL, TRUE (completed) or FALSE (pending).
type CompletionFilter string

const (
	CompletionAll       CompletionFilter = FilterAll
	CompletionCompleted CompletionFilter = "TRUE"
	CompletionPending   CompletionFilter = "FALSE"
)

func (f CompletionFilter) IsAll() bool { return f == "" || f == CompletionAll }

func (f CompletionFilter) Completed() bool { return f == CompletionCompleted }

// ParseCompletionFilter also accepts the words completed/done and pending.
func ParseCompletionFilter(s string) (CompletionFilter, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", FilterAll:
		return CompletionAll, true
	case "TRUE", "COMPLETED", "DONE":
		return CompletionCompleted, true
	case "FALSE", "PENDING":
		return CompletionPending, true
	}
	return "", false
}
