// Package notify is the transient notification channel. Validation failures
// and server failures go through the same Reporter; only the text differs.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message ids, kept in sync with locales/active.*.toml.
const (
	MsgAPIBaseURLMissing    = "apiBaseURLMissing"
	MsgNotLoggedIn          = "notLoggedIn"
	MsgLoggedIn             = "loggedIn"
	MsgLoggedOut            = "loggedOut"
	MsgRegistered           = "registered"
	MsgAuthFailed           = "authFailed"
	MsgFetchTasksFailed     = "fetchTasksFailed"
	MsgSearchFailed         = "searchFailed"
	MsgFilterFailed         = "filterFailed"
	MsgOverdueShown         = "overdueShown"
	MsgOverdueFailed        = "overdueFailed"
	MsgTaskNotFound         = "taskNotFound"
	MsgTaskStatusUpdated    = "taskStatusUpdated"
	MsgTaskStatusFailed     = "taskStatusFailed"
	MsgTitleRequired        = "titleRequired"
	MsgTaskCreated          = "taskCreated"
	MsgTaskUpdated          = "taskUpdated"
	MsgTaskSaveFailed       = "taskSaveFailed"
	MsgTaskDeleted          = "taskDeleted"
	MsgTaskDeleteFailed     = "taskDeleteFailed"
	MsgTaskLoadFailed       = "taskLoadFailed"
	MsgSubtaskTitleEmpty    = "subtaskTitleEmpty"
	MsgTaskIDMissing        = "taskIDMissing"
	MsgSubtaskAdded         = "subtaskAdded"
	MsgSubtaskAddFailed     = "subtaskAddFailed"
	MsgSubtaskUpdated       = "subtaskUpdated"
	MsgSubtaskUpdateFailed  = "subtaskUpdateFailed"
	MsgSubtaskDeleted       = "subtaskDeleted"
	MsgSubtaskDeleteFailed  = "subtaskDeleteFailed"
	MsgSubtaskToggleFailed  = "subtaskToggleFailed"
	MsgSubtasksLoadFailed   = "subtasksLoadFailed"
	MsgSubtaskNotFound      = "subtaskNotFound"
	MsgAllSubtasksCompleted = "allSubtasksCompleted"
	MsgSomeSubtasksFailed   = "someSubtasksFailed"
	MsgReminderStatusFailed = "reminderStatusFailed"
	MsgNoReminders          = "noReminders"
	MsgThemeChanged         = "themeChanged"
)

type Notification struct {
	Level Level
	ID    string
	Text  string
}

type Sink interface {
	Notify(n Notification)
}

type SinkFunc func(n Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

type Reporter struct {
	catalog *Catalog
	sink    Sink
}

func NewReporter(catalog *Catalog, sink Sink) *Reporter {
	return &Reporter{catalog: catalog, sink: sink}
}

func (r *Reporter) Success(id string, data map[string]any) {
	r.emit(LevelSuccess, id, r.catalog.Text(id, data))
}

func (r *Reporter) Warn(id string, data map[string]any) {
	r.emit(LevelWarning, id, r.catalog.Text(id, data))
}

// Failure emits an error. A non-empty detail (usually the server's message)
// replaces the localized fallback text.
func (r *Reporter) Failure(id, detail string) {
	text := detail
	if text == "" {
		text = r.catalog.Text(id, nil)
	}
	r.emit(LevelError, id, text)
}

// Failuref is Failure with template data for the fallback text.
func (r *Reporter) Failuref(id string, data map[string]any) {
	r.emit(LevelError, id, r.catalog.Text(id, data))
}

func (r *Reporter) Text(id string, data map[string]any) string {
	return r.catalog.Text(id, data)
}

func (r *Reporter) emit(level Level, id, text string) {
	if r.sink == nil {
		return
	}
	r.sink.Notify(Notification{Level: level, ID: id, Text: text})
}

// Recorder is a Sink that keeps every notification.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

func (r *Recorder) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// WriterSink prints one line per notification.
func WriterSink(w io.Writer) Sink {
	return SinkFunc(func(n Notification) {
		mark := "✓"
		switch n.Level {
		case LevelWarning:
			mark = "!"
		case LevelError:
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, n.Text)
	})
}
