package handler

import (
	"net/http"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/service"
)

// AuthHandler serves /auth/register and /auth/login. Both answer the token
// payload at the top level, with statusCode mirrored in the body.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	resp, err := h.svc.Register(r.Context(), creds)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	resp, err := h.svc.Login(r.Context(), creds)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}
