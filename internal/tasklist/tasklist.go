// Package tasklist is the task list screen's state: the fetched task set,
// the visible subset, the active filters and the summary.
package tasklist

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaekwang-park/taskapp/internal/api"
	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/notify"
)

// TaskAPI is the subset of the API client the list needs.
type TaskAPI interface {
	GetAllMyTasks(ctx context.Context) api.Result[[]model.Task]
	GetMyTasksByCompletionStatus(ctx context.Context, completed bool) api.Result[[]model.Task]
	GetMyTasksByPriority(ctx context.Context, priority model.Priority) api.Result[[]model.Task]
	FindByTitle(ctx context.Context, title string) api.Result[[]model.Task]
	GetTasksDueTodayAndOverdue(ctx context.Context) api.Result[[]model.Task]
	GetTaskSummary(ctx context.Context) api.Result[model.TaskSummary]
	UpdateTask(ctx context.Context, task model.Task) api.Result[model.Task]
	DeleteTask(ctx context.Context, id model.ID) api.Result[struct{}]
}

// Snapshot is a copy of the view-model state.
type Snapshot struct {
	Tasks            []model.Task
	Visible          []model.Task
	PriorityFilter   model.PriorityFilter
	CompletionFilter model.CompletionFilter
	SearchQuery      string
	Overdue          bool
	Summary          *model.TaskSummary
	Error            string
}

type ViewModel struct {
	api      TaskAPI
	reporter *notify.Reporter
	logger   *slog.Logger
	now      func() time.Time

	mu               sync.Mutex
	tasks            []model.Task
	filtered         []model.Task
	priorityFilter   model.PriorityFilter
	completionFilter model.CompletionFilter
	searchQuery      string
	overdue          bool
	summary          *model.TaskSummary
	errText          string
}

func New(client TaskAPI, reporter *notify.Reporter, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		api:              client,
		reporter:         reporter,
		logger:           logger,
		now:              time.Now,
		priorityFilter:   model.FilterAll,
		completionFilter: model.CompletionAll,
	}
}

// WithClock overrides the clock used by IsOverdue.
func (vm *ViewModel) WithClock(now func() time.Time) *ViewModel {
	vm.now = now
	return vm
}

// Load fetches the task set and the summary concurrently. A failed task
// fetch empties both lists; a failed summary keeps the previous one. The
// active filters are then re-applied.
func (vm *ViewModel) Load(ctx context.Context) {
	var (
		tasksRes   api.Result[[]model.Task]
		summaryRes api.Result[model.TaskSummary]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasksRes = vm.api.GetAllMyTasks(gctx)
		return nil
	})
	g.Go(func() error {
		summaryRes = vm.api.GetTaskSummary(gctx)
		return nil
	})
	_ = g.Wait()

	vm.mu.Lock()
	vm.overdue = false
	if tasksRes.OK() {
		vm.tasks = tasksRes.Data
		vm.filtered = tasksRes.Data
		vm.errText = ""
	} else {
		vm.tasks = nil
		vm.filtered = nil
		vm.errText = vm.failText(notify.MsgFetchTasksFailed, tasksRes.Message)
	}
	if summaryRes.OK() {
		s := summaryRes.Data
		vm.summary = &s
	}
	vm.mu.Unlock()

	if !tasksRes.OK() {
		vm.warn("load tasks", tasksRes.StatusCode, tasksRes.Message)
		vm.reporter.Failure(notify.MsgFetchTasksFailed, tasksRes.Message)
		return
	}
	if !summaryRes.OK() {
		vm.warn("load summary", summaryRes.StatusCode, summaryRes.Message)
	}
	vm.ApplyFilters(ctx)
}

func (vm *ViewModel) SetPriorityFilter(ctx context.Context, f model.PriorityFilter) {
	vm.mu.Lock()
	vm.priorityFilter = f
	vm.mu.Unlock()
	vm.ApplyFilters(ctx)
}

func (vm *ViewModel) SetCompletionFilter(ctx context.Context, f model.CompletionFilter) {
	vm.mu.Lock()
	vm.completionFilter = f
	vm.mu.Unlock()
	vm.ApplyFilters(ctx)
}

// ApplyFilters recomputes the visible set from server queries. With both
// filters active the completion query runs first and the priority result
// is intersected with it by id. With no filter the visible set is the
// full task set. In the overdue view the query results are further
// limited to the overdue working set.
func (vm *ViewModel) ApplyFilters(ctx context.Context) {
	vm.mu.Lock()
	working := append([]model.Task(nil), vm.tasks...)
	result := working
	pf, cf := vm.priorityFilter, vm.completionFilter
	scoped := vm.overdue
	vm.errText = ""
	vm.mu.Unlock()

	if !cf.IsAll() {
		res := vm.api.GetMyTasksByCompletionStatus(ctx, cf.Completed())
		if !res.OK() {
			vm.filterFailed(res)
			return
		}
		result = res.Data
	}

	if !pf.IsAll() {
		res := vm.api.GetMyTasksByPriority(ctx, pf.Priority())
		if !res.OK() {
			vm.filterFailed(res)
			return
		}
		if cf.IsAll() {
			result = res.Data
		} else {
			result = model.IntersectByID(result, res.Data)
		}
	}

	if scoped && (!cf.IsAll() || !pf.IsAll()) {
		result = model.IntersectByID(result, working)
	}

	vm.mu.Lock()
	vm.filtered = result
	vm.mu.Unlock()
}

func (vm *ViewModel) filterFailed(res api.Result[[]model.Task]) {
	vm.warn("apply filters", res.StatusCode, res.Message)
	vm.mu.Lock()
	vm.errText = vm.failText(notify.MsgFilterFailed, res.Message)
	vm.mu.Unlock()
	vm.reporter.Failure(notify.MsgFilterFailed, res.Message)
}

// Search replaces the visible set with the server's title matches. It
// does not combine with the filters. A blank query re-applies the filters.
func (vm *ViewModel) Search(ctx context.Context, query string) {
	vm.mu.Lock()
	vm.searchQuery = query
	vm.errText = ""
	vm.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		vm.ApplyFilters(ctx)
		return
	}

	res := vm.api.FindByTitle(ctx, query)

	vm.mu.Lock()
	if res.OK() {
		vm.filtered = res.Data
	} else {
		vm.filtered = nil
		vm.errText = vm.failText(notify.MsgSearchFailed, res.Message)
	}
	vm.mu.Unlock()

	if !res.OK() {
		vm.warn("search", res.StatusCode, res.Message)
		vm.reporter.Failure(notify.MsgSearchFailed, res.Message)
	}
}

// Reset clears the filters and the search query and reloads everything.
func (vm *ViewModel) Reset(ctx context.Context) {
	vm.mu.Lock()
	vm.priorityFilter = model.FilterAll
	vm.completionFilter = model.CompletionAll
	vm.searchQuery = ""
	vm.errText = ""
	vm.mu.Unlock()
	vm.Load(ctx)
}

// ShowOverdue replaces the working set with the server's due-today and
// overdue tasks, then re-applies the filters within it. The view lasts
// until the next Load.
func (vm *ViewModel) ShowOverdue(ctx context.Context) {
	res := vm.api.GetTasksDueTodayAndOverdue(ctx)
	if !res.OK() {
		vm.warn("overdue", res.StatusCode, res.Message)
		vm.reporter.Failure(notify.MsgOverdueFailed, "")
		return
	}

	vm.mu.Lock()
	vm.tasks = res.Data
	vm.filtered = res.Data
	vm.overdue = true
	vm.mu.Unlock()

	vm.reporter.Success(notify.MsgOverdueShown, nil)
	vm.ApplyFilters(ctx)
}

// ToggleComplete flips a task's completion on the server. On success the
// server's copy replaces the local one in both lists and the summary is
// refreshed. The filters are re-applied only when a completion filter is
// active, since the row may no longer belong to the visible set.
func (vm *ViewModel) ToggleComplete(ctx context.Context, id model.ID) bool {
	task, ok := vm.find(id)
	if !ok {
		vm.reporter.Failure(notify.MsgTaskNotFound, "")
		return false
	}
	task.Completed = !task.Completed

	res := vm.api.UpdateTask(ctx, task)
	if !res.OK() {
		vm.warn("toggle complete", res.StatusCode, res.Message)
		vm.mu.Lock()
		vm.errText = vm.failText(notify.MsgTaskStatusFailed, res.Message)
		vm.mu.Unlock()
		vm.reporter.Failure(notify.MsgTaskStatusFailed, "")
		return false
	}

	updated := res.Data
	if updated.ID.IsMissing() {
		updated = task
	}

	vm.mu.Lock()
	vm.tasks = patch(vm.tasks, updated)
	vm.filtered = patch(vm.filtered, updated)
	completionActive := !vm.completionFilter.IsAll()
	vm.mu.Unlock()

	vm.reporter.Success(notify.MsgTaskStatusUpdated, nil)
	vm.refreshSummary(ctx)
	if completionActive {
		vm.ApplyFilters(ctx)
	}
	return true
}

// Delete removes a task and reloads the list.
func (vm *ViewModel) Delete(ctx context.Context, id model.ID) bool {
	res := vm.api.DeleteTask(ctx, id)
	if !res.OK() {
		vm.warn("delete task", res.StatusCode, res.Message)
		vm.reporter.Failure(notify.MsgTaskDeleteFailed, res.Message)
		return false
	}
	vm.reporter.Success(notify.MsgTaskDeleted, nil)
	vm.Load(ctx)
	return true
}

func (vm *ViewModel) refreshSummary(ctx context.Context) {
	res := vm.api.GetTaskSummary(ctx)
	if !res.OK() {
		vm.warn("refresh summary", res.StatusCode, res.Message)
		return
	}
	vm.mu.Lock()
	s := res.Data
	vm.summary = &s
	vm.mu.Unlock()
}

// Visible returns the visible set sorted by due date.
func (vm *ViewModel) Visible() []model.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return model.SortByDueDate(vm.filtered)
}

func (vm *ViewModel) IsOverdue(task model.Task) bool {
	return task.IsOverdue(vm.now())
}

func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	s := Snapshot{
		Tasks:            append([]model.Task(nil), vm.tasks...),
		Visible:          model.SortByDueDate(vm.filtered),
		PriorityFilter:   vm.priorityFilter,
		CompletionFilter: vm.completionFilter,
		SearchQuery:      vm.searchQuery,
		Overdue:          vm.overdue,
		Error:            vm.errText,
	}
	if vm.summary != nil {
		summary := *vm.summary
		s.Summary = &summary
	}
	return s
}

func (vm *ViewModel) find(id model.ID) (model.Task, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, t := range vm.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (vm *ViewModel) failText(id, detail string) string {
	if detail != "" {
		return detail
	}
	return vm.reporter.Text(id, nil)
}

func (vm *ViewModel) warn(op string, status int, message string) {
	vm.logger.Warn("task list request failed", "op", op, "status", status, "error", message)
}

func patch(tasks []model.Task, updated model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == updated.ID {
			t = updated
		}
		out[i] = t
	}
	return out
}
