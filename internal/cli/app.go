package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskapp/internal/api"
	"github.com/jaekwang-park/taskapp/internal/config"
	"github.com/jaekwang-park/taskapp/internal/notify"
	"github.com/jaekwang-park/taskapp/internal/session"
	"github.com/jaekwang-park/taskapp/internal/store"
	"github.com/jaekwang-park/taskapp/internal/taskform"
	"github.com/jaekwang-park/taskapp/internal/tasklist"
)

// App holds what every command needs once the configuration is known.
type App struct {
	out    io.Writer
	errOut io.Writer

	flags struct {
		apiURL   string
		lang     string
		logLevel string
	}

	cfg      config.Config
	logger   *slog.Logger
	kv       store.KV
	closeKV  func() error
	session  *session.Session
	prefs    *session.Preferences
	client   *api.Client
	reporter *notify.Reporter
}

func (a *App) open(ctx context.Context) error {
	cfg := config.Load()
	if a.flags.apiURL != "" {
		cfg.APIBaseURL = strings.TrimRight(a.flags.apiURL, "/")
		cfg.APIBaseURLSet = true
	}
	if a.flags.lang != "" {
		cfg.Language = strings.ToLower(a.flags.lang)
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = slog.New(slog.NewJSONHandler(a.errOut, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))

	catalog, err := notify.NewCatalog(cfg.Language)
	if err != nil {
		return err
	}
	a.reporter = notify.NewReporter(catalog, notify.WriterSink(a.errOut))

	if a.kv == nil {
		db, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return fmt.Errorf("failed to open state: %w", err)
		}
		a.kv = db
		a.closeKV = db.Close
	}

	a.session = session.New(a.kv)
	a.prefs = session.NewPreferences(a.kv)
	a.client = api.New(cfg.APIBaseURL, a.session, api.WithLogger(a.logger))

	if !cfg.APIBaseURLSet {
		a.reporter.Warn(notify.MsgAPIBaseURLMissing, map[string]any{"URL": cfg.APIBaseURL})
	}
	a.logger.Debug("taskctl ready", "api_base_url", cfg.APIBaseURL, "store", cfg.StorePath)
	return nil
}

func (a *App) close() error {
	if a.closeKV == nil {
		return nil
	}
	err := a.closeKV()
	a.closeKV = nil
	return err
}

func (a *App) taskList() *tasklist.ViewModel {
	return tasklist.New(a.client, a.reporter, a.logger)
}

func (a *App) taskForm() *taskform.Form {
	return taskform.New(a.client, a.prefs, a.reporter,
		taskform.WithLogger(a.logger),
		taskform.WithBulkConcurrency(a.cfg.BulkConcurrency),
	)
}

// authed gates run behind a live session.
func (a *App) authed(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !a.session.IsAuthenticated(cmd.Context()) {
			a.reporter.Failure(notify.MsgNotLoggedIn, "")
			return errReported
		}
		return run(cmd, args)
	}
}
