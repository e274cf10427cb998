package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/service"
)

// TaskHandler serves /api/tasks. CRUD routes answer the bare task; list
// and aggregate routes answer an Envelope.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func taskID(r *http.Request) model.ID {
	return model.ID(mux.Vars(r)["id"])
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if !decodeBody(w, r, &task) {
		return
	}

	created, err := h.svc.Create(r.Context(), getUserID(r), task)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, created)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.TaskUpdate
	if !decodeBody(w, r, &input) {
		return
	}

	updated, err := h.svc.Update(r.Context(), getUserID(r), taskID(r), input)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.GetByID(r.Context(), getUserID(r), taskID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), getUserID(r), taskID(r)); err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteEnvelope(w, "Task deleted successfully", nil)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.List(r.Context(), getUserID(r))
	h.writeList(w, r, tasks, err)
}

func (h *TaskHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	completed, err := strconv.ParseBool(r.URL.Query().Get("completed"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "completed must be true or false")
		return
	}
	tasks, err := h.svc.ListByCompletion(r.Context(), getUserID(r), completed)
	h.writeList(w, r, tasks, err)
}

func (h *TaskHandler) ListByPriority(w http.ResponseWriter, r *http.Request) {
	priority, ok := model.ParsePriority(r.URL.Query().Get("priority"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "priority must be LOW, MEDIUM or HIGH")
		return
	}
	tasks, err := h.svc.ListByPriority(r.Context(), getUserID(r), priority)
	h.writeList(w, r, tasks, err)
}

func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.SearchByTitle(r.Context(), getUserID(r), r.URL.Query().Get("title"))
	h.writeList(w, r, tasks, err)
}

func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.DueTodayAndOverdue(r.Context(), getUserID(r))
	h.writeList(w, r, tasks, err)
}

func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), getUserID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteEnvelope(w, "Task summary fetched", summary)
}

func (h *TaskHandler) ReminderStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.svc.ReminderStatus(r.Context(), getUserID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteEnvelope(w, "Reminder status fetched", statuses)
}

func (h *TaskHandler) writeList(w http.ResponseWriter, r *http.Request, tasks []model.Task, err error) {
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteEnvelope(w, "Tasks fetched", tasks)
}
