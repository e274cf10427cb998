package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func dueText(t model.Task) string {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return "-"
	}
	return t.DueDate.Local().Format(dateLayout)
}

func statusText(t model.Task, now time.Time) string {
	switch {
	case t.Completed:
		return "done"
	case t.IsOverdue(now):
		return "OVERDUE"
	default:
		return "pending"
	}
}

func printTasks(w io.Writer, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tDUE\tSTATUS")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Priority, dueText(t), statusText(t, now))
	}
	tw.Flush()
}

func printTask(w io.Writer, t model.Task, subtasks []model.Subtask, now time.Time) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", t.Description)
	}
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Due:\t%s\n", dueText(t))
	fmt.Fprintf(tw, "Status:\t%s\n", statusText(t, now))
	if t.CreatedAt != nil && !t.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", t.CreatedAt.Local().Format(time.DateTime))
	}
	tw.Flush()

	if len(subtasks) == 0 {
		return
	}
	fmt.Fprintln(w)
	printSubtasks(w, subtasks)
}

func printSubtasks(w io.Writer, subtasks []model.Subtask) {
	if len(subtasks) == 0 {
		fmt.Fprintln(w, "No subtasks.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDONE\tSUBTASK")
	for _, s := range subtasks {
		mark := "[ ]"
		if s.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, mark, s.Title)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s model.TaskSummary) {
	fmt.Fprintf(w, "Total: %d  Completed: %d  Pending: %d  High priority: %d  Completion: %d%%\n",
		s.TotalTasks, s.CompletedTasks, s.PendingTasks, s.HighPriorityTasks, s.RoundedPercentage())
}
