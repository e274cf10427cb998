package handler

import (
	"net/http"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/service"
)

type SubtaskHandler struct {
	svc *service.SubtaskService
}

func NewSubtaskHandler(svc *service.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{svc: svc}
}

func (h *SubtaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var subtask model.Subtask
	if !decodeBody(w, r, &subtask) {
		return
	}

	created, err := h.svc.Create(r.Context(), getUserID(r), subtask)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *SubtaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.SubtaskUpdate
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

func (h *SubtaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), getUserID(r), taskID(r)); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubtaskHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	subtasks, err := h.svc.ListByTask(r.Context(), getUserID(r), taskID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, subtasks)
}

func (h *SubtaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	toggled, err := h.svc.Toggle(r.Context(), getUserID(r), taskID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toggled)
}
