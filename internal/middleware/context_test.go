package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/jaekwang-park/taskapp/internal/middleware"
)

func TestSetAndGetUserID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if got := middleware.GetUserID(req); got != "" {
		t.Errorf("expected empty, got %q", got)
	}

	ctx := middleware.SetUserID(req.Context(), "user-abc")
	req = req.WithContext(ctx)

	if got := middleware.GetUserID(req); got != "user-abc" {
		t.Errorf("expected user-abc, got %q", got)
	}
}

func TestSetAndGetRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := middleware.GetRequestID(req.Context()); got != "" {
		t.Errorf("expected empty, got %q", got)
	}

	ctx := middleware.SetRequestID(req.Context(), "req-1")
	if got := middleware.GetRequestID(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}
