package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/taskform"
)

func subtasksCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtasks",
		Short: "Manage a task's subtasks",
	}
	cmd.AddCommand(subtasksListCmd(a))
	cmd.AddCommand(subtasksAddCmd(a))
	cmd.AddCommand(subtasksEditCmd(a))
	cmd.AddCommand(subtasksDeleteCmd(a))
	cmd.AddCommand(subtasksToggleCmd(a))
	cmd.AddCommand(subtasksCompleteAllCmd(a))
	return cmd
}

// loadForm opens the form on taskID, reporting load failures.
func (a *App) loadForm(cmd *cobra.Command, taskID string) (*taskform.Form, error) {
	form := a.taskForm()
	if !form.Load(cmd.Context(), model.ID(taskID)) {
		return nil, errReported
	}
	return form, nil
}

func subtasksListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd, args[0])
			if err != nil {
				return err
			}
			printSubtasks(a.out, form.Subtasks())
			return nil
		}),
	}
}

func subtasksAddCmd(a *App) *cobra.Command {
	var taskID string
	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add a subtask",
		Long: `Add a subtask to --task, or to the task created last when --task is
omitted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form := a.taskForm()
			if taskID != "" {
				form.Edit(func(t *model.Task) { t.ID = model.ID(taskID) })
			}
			if !form.AddSubtask(cmd.Context(), strings.Join(args, " ")) {
				return errReported
			}
			printSubtasks(a.out, form.Subtasks())
			return nil
		}),
	}
	cmd.Flags().StringVar(&taskID, "task", "", "Owning task id")
	return cmd
}

func subtasksEditCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <subtask-id> <title>...",
		Short: "Rename a subtask",
		Args:  cobra.MinimumNArgs(3),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd, args[0])
			if err != nil {
				return err
			}
			form.EditSubtask(cmd.Context(), model.ID(args[1]), strings.Join(args[2:], " "))
			printSubtasks(a.out, form.Subtasks())
			return nil
		}),
	}
}

func subtasksDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id> <subtask-id>",
		Short: "Delete a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd, args[0])
			if err != nil {
				return err
			}
			if !form.DeleteSubtask(cmd.Context(), model.ID(args[1])) {
				return errReported
			}
			printSubtasks(a.out, form.Subtasks())
			return nil
		}),
	}
}

func subtasksToggleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id> <subtask-id>",
		Short: "Flip a subtask between done and pending",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd, args[0])
			if err != nil {
				return err
			}
			if !form.ToggleSubtask(cmd.Context(), model.ID(args[1])) {
				return errReported
			}
			printSubtasks(a.out, form.Subtasks())
			return nil
		}),
	}
}

func subtasksCompleteAllCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete-all <task-id>",
		Short: "Mark every subtask of a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(cmd, args[0])
			if err != nil {
				return err
			}
			failed := form.CompleteAllSubtasks(cmd.Context())
			printSubtasks(a.out, form.Subtasks())
			if failed > 0 {
				return errReported
			}
			return nil
		}),
	}
}
