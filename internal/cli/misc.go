package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskapp/internal/notify"
	"github.com/jaekwang-park/taskapp/internal/session"
)

func summaryCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show task counts and completion",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			vm := a.taskList()
			vm.Load(cmd.Context())
			snap := vm.Snapshot()
			if snap.Error != "" || snap.Summary == nil {
				return errReported
			}
			printSummary(a.out, *snap.Summary)
			return nil
		}),
	}
}

func remindersCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Show which reminders were sent or skipped",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			statuses, ok := a.taskForm().LoadReminderStatus(cmd.Context())
			if !ok {
				return errReported
			}
			if len(statuses) == 0 {
				fmt.Fprintln(a.out, a.reporter.Text(notify.MsgNoReminders, nil))
				return nil
			}
			tw := newTable(a.out)
			fmt.Fprintln(tw, "TASK\tREMINDER")
			for _, s := range statuses {
				fmt.Fprintf(tw, "%s\t%s\n", s.TaskTitle, s.Label())
			}
			tw.Flush()
			return nil
		}),
	}
}

func themeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				fmt.Fprintln(a.out, a.prefs.Theme(ctx))
				return nil
			}

			var (
				next session.Theme
				err  error
			)
			switch args[0] {
			case "toggle":
				next, err = a.prefs.ToggleTheme(ctx)
			case string(session.ThemeDark), string(session.ThemeLight):
				next = session.Theme(args[0])
				err = a.prefs.SetTheme(ctx, next)
			default:
				return fmt.Errorf("invalid theme %q: must be dark, light or toggle", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}
			a.reporter.Success(notify.MsgThemeChanged, map[string]any{"Theme": string(next)})
			return nil
		},
	}
}
