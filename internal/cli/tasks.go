package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/taskform"
)

func tasksCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and manage tasks",
	}
	cmd.AddCommand(tasksListCmd(a))
	cmd.AddCommand(tasksShowCmd(a))
	cmd.AddCommand(tasksAddCmd(a))
	cmd.AddCommand(tasksEditCmd(a))
	cmd.AddCommand(tasksToggleCmd(a))
	cmd.AddCommand(tasksDeleteCmd(a))
	return cmd
}

func tasksListCmd(a *App) *cobra.Command {
	var (
		priority string
		status   string
		search   string
		overdue  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks sorted by due date",
		Long: `List tasks sorted by due date. --status and --priority combine; --search
replaces the filtered list with title matches; --overdue limits the working
set to tasks due today or earlier, and --status and --priority then apply
within it.`,
		Args: cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			pf, ok := model.ParsePriorityFilter(priority)
			if !ok {
				return fmt.Errorf("invalid --priority %q: must be ALL, LOW, MEDIUM or HIGH", priority)
			}
			cf, ok := model.ParseCompletionFilter(status)
			if !ok {
				return fmt.Errorf("invalid --status %q: must be all, completed or pending", status)
			}

			ctx := cmd.Context()
			vm := a.taskList()
			vm.Load(ctx)
			if vm.Snapshot().Error != "" {
				return errReported
			}
			if overdue {
				vm.ShowOverdue(ctx)
			}
			if !cf.IsAll() {
				vm.SetCompletionFilter(ctx, cf)
			}
			if !pf.IsAll() {
				vm.SetPriorityFilter(ctx, pf)
			}
			if search != "" {
				vm.Search(ctx, search)
			}

			snap := vm.Snapshot()
			printTasks(a.out, snap.Visible, time.Now())
			if snap.Summary != nil {
				fmt.Fprintln(a.out)
				printSummary(a.out, *snap.Summary)
			}
			if snap.Error != "" {
				return errReported
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&priority, "priority", model.FilterAll, "Priority filter: ALL, LOW, MEDIUM or HIGH")
	cmd.Flags().StringVar(&status, "status", "all", "Completion filter: all, completed or pending")
	cmd.Flags().StringVar(&search, "search", "", "Search titles on the server")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Show only tasks due today or overdue")
	return cmd
}

func tasksShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form := a.taskForm()
			if !form.Load(cmd.Context(), model.ID(args[0])) {
				return errReported
			}
			printTask(a.out, form.Draft(), form.Subtasks(), time.Now())
			return nil
		}),
	}
}

// taskFields are the editable flags shared by add and edit.
type taskFields struct {
	title       string
	description string
	due         string
	priority    string
	completed   bool
}

func (f *taskFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD, or none)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority: LOW, MEDIUM or HIGH")
	cmd.Flags().BoolVar(&f.completed, "completed", false, "Mark the task completed")
}

// apply copies the flags the user set onto the form.
func (f *taskFields) apply(cmd *cobra.Command, form *taskform.Form) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		form.SetTitle(f.title)
	}
	if changed("description") {
		form.SetDescription(f.description)
	}
	if changed("priority") {
		p, ok := model.ParsePriority(f.priority)
		if !ok {
			return fmt.Errorf("invalid --priority %q: must be LOW, MEDIUM or HIGH", f.priority)
		}
		form.SetPriority(p)
	}
	if changed("due") {
		due, err := parseDue(f.due)
		if err != nil {
			return err
		}
		form.SetDueDate(due)
	}
	if changed("completed") {
		form.SetCompleted(f.completed)
	}
	return nil
}

func parseDue(s string) (*model.Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	due, err := model.ParseTimestamp(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --due: %w", err)
	}
	return due, nil
}

func tasksAddCmd(a *App) *cobra.Command {
	var (
		fields   taskFields
		subtasks []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form := a.taskForm()
			if err := fields.apply(cmd, form); err != nil {
				return err
			}
			ctx := cmd.Context()
			if form.Submit(ctx) == taskform.OutcomeFailed {
				return errReported
			}
			for _, title := range subtasks {
				form.AddSubtask(ctx, title)
			}
			printTask(a.out, form.Draft(), form.Subtasks(), time.Now())
			return nil
		}),
	}
	fields.register(cmd)
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "Subtask to attach after creating (repeatable)")
	return cmd
}

func tasksEditCmd(a *App) *cobra.Command {
	var fields taskFields
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form := a.taskForm()
			if !form.Load(ctx, model.ID(args[0])) {
				return errReported
			}
			if err := fields.apply(cmd, form); err != nil {
				return err
			}
			if form.Submit(ctx) == taskform.OutcomeFailed {
				return errReported
			}
			return nil
		}),
	}
	fields.register(cmd)
	return cmd
}

func tasksToggleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between done and pending",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			vm := a.taskList()
			vm.Load(ctx)
			if !vm.ToggleComplete(ctx, model.ID(args[0])) {
				return errReported
			}
			if s := vm.Snapshot().Summary; s != nil {
				printSummary(a.out, *s)
			}
			return nil
		}),
	}
}

func tasksDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			if !a.taskList().Delete(cmd.Context(), model.ID(args[0])) {
				return errReported
			}
			return nil
		}),
	}
}
