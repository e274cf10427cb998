// Package taskform is the create/edit screen for a single task and its
// subtasks.
package taskform

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jaekwang-park/taskapp/internal/api"
	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/notify"
)

type TaskAPI interface {
	GetTaskByID(ctx context.Context, id model.ID) api.Result[model.Task]
	CreateTask(ctx context.Context, task model.Task) api.Result[model.Task]
	UpdateTask(ctx context.Context, task model.Task) api.Result[model.Task]
	GetSubtasksByTaskID(ctx context.Context, taskID model.ID) api.Result[[]model.Subtask]
	CreateSubtask(ctx context.Context, subtask model.Subtask) api.Result[model.Subtask]
	UpdateSubtask(ctx context.Context, id model.ID, update model.SubtaskUpdate) api.Result[model.Subtask]
	DeleteSubtask(ctx context.Context, id model.ID) api.Result[struct{}]
	ToggleSubtaskCompletion(ctx context.Context, id model.ID) api.Result[model.Subtask]
	GetReminderStatus(ctx context.Context) api.Result[[]model.ReminderStatus]
}

// TaskIDCache keeps the id of the last created task across restarts.
type TaskIDCache interface {
	LastCreatedTaskID(ctx context.Context) (model.ID, error)
	SetLastCreatedTaskID(ctx context.Context, id model.ID) error
}

// ReminderPolicy decides what a submit does to the draft's reminder flag.
type ReminderPolicy int

const (
	// ReminderResetOnSubmit clears reminderSent on every submit.
	ReminderResetOnSubmit ReminderPolicy = iota
	// ReminderPreserve leaves reminderSent as loaded.
	ReminderPreserve
)

// Outcome tells the caller what to do after Submit.
type Outcome int

const (
	// OutcomeFailed means nothing was saved; the form stays as it was.
	OutcomeFailed Outcome = iota
	// OutcomeStay means a task was created and the form stays open for subtasks.
	OutcomeStay
	// OutcomeLeave means an edit was saved and the form can close.
	OutcomeLeave
)

type Option func(*Form)

func WithReminderPolicy(p ReminderPolicy) Option {
	return func(f *Form) { f.policy = p }
}

// WithBulkConcurrency bounds CompleteAllSubtasks. 1 toggles in order.
func WithBulkConcurrency(n int) Option {
	return func(f *Form) {
		if n > 0 {
			f.bulk = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) { f.logger = logger }
}

type Form struct {
	api      TaskAPI
	cache    TaskIDCache
	reporter *notify.Reporter
	logger   *slog.Logger
	policy   ReminderPolicy
	bulk     int

	mu       sync.Mutex
	editing  bool
	draft    model.Task
	subtasks []model.Subtask
	errText  string
}

// New returns a form for a new task: priority MEDIUM, not completed.
func New(client TaskAPI, cache TaskIDCache, reporter *notify.Reporter, opts ...Option) *Form {
	f := &Form{
		api:      client,
		cache:    cache,
		reporter: reporter,
		logger:   slog.Default(),
		bulk:     4,
		draft:    model.Task{Priority: model.PriorityMedium},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load switches the form to edit mode for id and loads its subtasks.
func (f *Form) Load(ctx context.Context, id model.ID) bool {
	res := f.api.GetTaskByID(ctx, id)
	if !res.OK() {
		f.warn("load task", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgTaskLoadFailed, res.Message)
		return false
	}

	f.mu.Lock()
	f.editing = true
	f.draft = res.Data
	f.mu.Unlock()

	if res.Data.Persisted() {
		f.loadSubtasks(ctx, res.Data.ID)
	}
	return true
}

func (f *Form) IsEdit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing
}

// CanAddSubtasks is true once the draft has a server identifier.
func (f *Form) CanAddSubtasks() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Persisted()
}

func (f *Form) Draft() model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) Subtasks() []model.Subtask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Subtask(nil), f.subtasks...)
}

func (f *Form) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errText
}

// Edit applies fn to the draft.
func (f *Form) Edit(fn func(t *model.Task)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

func (f *Form) SetTitle(title string) {
	f.Edit(func(t *model.Task) { t.Title = title })
}

func (f *Form) SetDescription(description string) {
	f.Edit(func(t *model.Task) { t.Description = description })
}

func (f *Form) SetPriority(p model.Priority) {
	f.Edit(func(t *model.Task) { t.Priority = p })
}

func (f *Form) SetCompleted(completed bool) {
	f.Edit(func(t *model.Task) { t.Completed = completed })
}

// SetDueDate sets or clears (nil) the due date.
func (f *Form) SetDueDate(due *model.Timestamp) {
	f.Edit(func(t *model.Task) { t.DueDate = due })
}

// Submit saves the draft. A blank title is rejected before any request.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	f.errText = ""
	f.draft.Title = strings.TrimSpace(f.draft.Title)
	if f.policy == ReminderResetOnSubmit {
		f.draft.ReminderSent = false
	}
	if f.draft.DueDate != nil && f.draft.DueDate.IsZero() {
		f.draft.DueDate = nil
	}
	draft, editing := f.draft, f.editing
	f.mu.Unlock()

	if draft.Title == "" {
		f.reporter.Failure(notify.MsgTitleRequired, "")
		return OutcomeFailed
	}

	var res api.Result[model.Task]
	if editing {
		res = f.api.UpdateTask(ctx, draft)
	} else {
		res = f.api.CreateTask(ctx, draft)
	}
	if !res.OK() {
		f.warn("save task", res.StatusCode, res.Message)
		f.mu.Lock()
		f.errText = res.Message
		f.mu.Unlock()
		f.reporter.Failure(notify.MsgTaskSaveFailed, res.Message)
		return OutcomeFailed
	}

	if editing {
		f.reporter.Success(notify.MsgTaskUpdated, nil)
		return OutcomeLeave
	}

	f.reporter.Success(notify.MsgTaskCreated, nil)
	id := res.Data.ID
	if id.IsMissing() {
		return OutcomeLeave
	}

	f.mu.Lock()
	f.draft.ID = id
	f.draft.CreatedAt = res.Data.CreatedAt
	f.mu.Unlock()

	if err := f.cache.SetLastCreatedTaskID(ctx, id); err != nil {
		f.logger.Warn("failed to cache created task id", "task_id", id, "error", err)
	}
	f.loadSubtasks(ctx, id)
	return OutcomeStay
}

// AddSubtask attaches a subtask to the draft's task, or to the last
// created task when the draft has no id yet.
func (f *Form) AddSubtask(ctx context.Context, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		f.reporter.Failure(notify.MsgSubtaskTitleEmpty, "")
		return false
	}
	taskID := f.resolveTaskID(ctx)
	if taskID.IsMissing() {
		f.reporter.Failure(notify.MsgTaskIDMissing, "")
		return false
	}

	res := f.api.CreateSubtask(ctx, model.Subtask{TaskID: taskID, Title: title})
	if !res.OK() {
		f.warn("add subtask", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgSubtaskAddFailed, res.Message)
		return false
	}
	f.loadSubtasks(ctx, taskID)
	f.reporter.Success(notify.MsgSubtaskAdded, nil)
	return true
}

// EditSubtask renames a subtask. A blank or unchanged title is ignored.
func (f *Form) EditSubtask(ctx context.Context, id model.ID, title string) bool {
	current, ok := f.subtask(id)
	if !ok {
		f.reporter.Failure(notify.MsgSubtaskNotFound, "")
		return false
	}
	title = strings.TrimSpace(title)
	if title == "" || title == current.Title {
		return false
	}

	res := f.api.UpdateSubtask(ctx, id, model.SubtaskUpdate{Title: title})
	if !res.OK() {
		f.warn("update subtask", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgSubtaskUpdateFailed, res.Message)
		return false
	}
	f.loadSubtasks(ctx, f.resolveTaskID(ctx))
	f.reporter.Success(notify.MsgSubtaskUpdated, nil)
	return true
}

func (f *Form) DeleteSubtask(ctx context.Context, id model.ID) bool {
	res := f.api.DeleteSubtask(ctx, id)
	if !res.OK() {
		f.warn("delete subtask", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgSubtaskDeleteFailed, res.Message)
		return false
	}
	f.loadSubtasks(ctx, f.resolveTaskID(ctx))
	f.reporter.Success(notify.MsgSubtaskDeleted, nil)
	return true
}

func (f *Form) ToggleSubtask(ctx context.Context, id model.ID) bool {
	res := f.api.ToggleSubtaskCompletion(ctx, id)
	if !res.OK() {
		f.warn("toggle subtask", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgSubtaskToggleFailed, res.Message)
		return false
	}
	f.loadSubtasks(ctx, f.resolveTaskID(ctx))
	return true
}

// CompleteAllSubtasks toggles every incomplete subtask, at most bulk at a
// time, then reloads once. It returns the number of failed toggles.
func (f *Form) CompleteAllSubtasks(ctx context.Context) int {
	pending := model.Incomplete(f.Subtasks())
	if len(pending) == 0 {
		return 0
	}

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.bulk)
	for _, s := range pending {
		s := s // per-iteration copy; go.mod targets go1.21
		g.Go(func() error {
			res := f.api.ToggleSubtaskCompletion(gctx, s.ID)
			if !res.OK() {
				f.warn("complete subtask", res.StatusCode, res.Message)
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	f.loadSubtasks(ctx, f.resolveTaskID(ctx))

	n := int(failed.Load())
	if n == 0 {
		f.reporter.Success(notify.MsgAllSubtasksCompleted, nil)
	} else {
		f.reporter.Failuref(notify.MsgSomeSubtasksFailed, map[string]any{"Count": n})
	}
	return n
}

// LoadReminderStatus fetches the reminder outcomes of the caller's tasks.
func (f *Form) LoadReminderStatus(ctx context.Context) ([]model.ReminderStatus, bool) {
	res := f.api.GetReminderStatus(ctx)
	if !res.OK() {
		f.warn("reminder status", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgReminderStatusFailed, res.Message)
		return nil, false
	}
	return res.Data, true
}

func (f *Form) loadSubtasks(ctx context.Context, taskID model.ID) {
	res := f.api.GetSubtasksByTaskID(ctx, taskID)
	if res.StatusCode != http.StatusOK {
		f.warn("load subtasks", res.StatusCode, res.Message)
		f.reporter.Failure(notify.MsgSubtasksLoadFailed, "")
		return
	}
	f.mu.Lock()
	f.subtasks = res.Data
	f.mu.Unlock()
}

func (f *Form) resolveTaskID(ctx context.Context) model.ID {
	f.mu.Lock()
	id := f.draft.ID
	f.mu.Unlock()
	if !id.IsMissing() {
		return id
	}
	cached, err := f.cache.LastCreatedTaskID(ctx)
	if err != nil {
		f.logger.Warn("failed to read cached task id", "error", err)
		return ""
	}
	return cached
}

func (f *Form) subtask(id model.ID) (model.Subtask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subtasks {
		if s.ID == id {
			return s, true
		}
	}
	return model.Subtask{}, false
}

func (f *Form) warn(op string, status int, message string) {
	f.logger.Warn("task form request failed", "op", op, "status", status, "error", message)
}
