// Package cli is the taskctl command tree. Each command drives one
// view-model operation against the configured backend.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskapp/internal/store"
)

// errReported is returned once a failure has already been shown as a
// notification. It exits non-zero without printing again.
var errReported = errors.New("reported")

type Option func(*App)

// WithStore replaces the state database with kv. The caller owns kv.
func WithStore(kv store.KV) Option {
	return func(a *App) { a.kv = kv }
}

// WithOutput sets where results and notifications are written.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// NewRootCmd builds the full command tree. Nothing is opened until a
// command runs.
func NewRootCmd(version string, opts ...Option) *cobra.Command {
	a := &App{out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "taskctl",
		Short: "taskctl - manage your tasks and subtasks",
		Long: `taskctl talks to the task backend configured by TASKAPP_API_BASE_URL
(or --api-url). Log in once; the session is kept in the local state database.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	// Global flags
	root.PersistentFlags().StringVar(&a.flags.apiURL, "api-url", "", "Backend base URL (overrides TASKAPP_API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.flags.lang, "lang", "", "Notification language: en or fr")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(registerCmd(a))
	root.AddCommand(loginCmd(a))
	root.AddCommand(logoutCmd(a))
	root.AddCommand(whoamiCmd(a))
	root.AddCommand(tasksCmd(a))
	root.AddCommand(subtasksCmd(a))
	root.AddCommand(summaryCmd(a))
	root.AddCommand(remindersCmd(a))
	root.AddCommand(themeCmd(a))

	return root
}

// Execute runs taskctl with the process arguments.
func Execute(ctx context.Context, version string) error {
	root := NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}
