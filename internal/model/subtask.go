package model

type Subtask struct {
	ID        ID     `json:"id,omitempty"`
	TaskID    ID     `json:"taskId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type SubtaskUpdate struct {
	Title string `json:"title"`
}

// Incomplete returns the subtasks not yet completed, in order.
func Incomplete(subtasks []Subtask) []Subtask {
	var out []Subtask
	for _, s := range subtasks {
		if !s.Completed {
			out = append(out, s)
		}
	}
	return out
}
