package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaekwang-park/taskapp/internal/api"
	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/session"
	"github.com/jaekwang-park/taskapp/internal/store"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s := session.New(store.NewMemory())
	if token != "" {
		if err := s.SaveToken(context.Background(), token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}
	}
	return s
}

func stubServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(context.Background())
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestDecode_ResponseShapes(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
		wantTitle  string
	}{
		{
			name:       "bare entity",
			status:     200,
			body:       `{"id":7,"title":"T1","priority":"HIGH"}`,
			wantStatus: 200,
			wantTitle:  "T1",
		},
		{
			name:       "envelope with data",
			status:     200,
			body:       `{"statusCode":200,"message":"ok","data":{"id":"7","title":"Wrapped"}}`,
			wantStatus: 200,
			wantMsg:    "ok",
			wantTitle:  "Wrapped",
		},
		{
			name:       "envelope without data",
			status:     200,
			body:       `{"statusCode":200,"message":"No task found"}`,
			wantStatus: 200,
			wantMsg:    "No task found",
		},
		{
			name:       "embedded failure under http 200",
			status:     200,
			body:       `{"statusCode":500,"message":"Task not found"}`,
			wantStatus: 500,
			wantMsg:    "Task not found",
		},
		{
			name:       "normalized error",
			status:     404,
			body:       `{"statusCode":404,"message":"resource not found"}`,
			wantStatus: 404,
			wantMsg:    "resource not found",
		},
		{
			name:       "nested error object",
			status:     401,
			body:       `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`,
			wantStatus: 401,
			wantMsg:    "invalid or expired token",
		},
		{
			name:       "error without body",
			status:     502,
			body:       "",
			wantStatus: 502,
			wantMsg:    "Bad Gateway",
		},
		{
			name:       "plain text error",
			status:     400,
			body:       "bad things",
			wantStatus: 400,
			wantMsg:    "bad things",
		},
		{
			name:       "undecodable success body",
			status:     200,
			body:       `[1,2,3]`,
			wantStatus: 500,
			wantMsg:    "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := stubServer(t, tt.status, tt.body)
			c := api.New(srv.URL, newSession(t, "tok"), api.WithLogger(discard))

			res := c.GetTaskByID(context.Background(), "7")

			if res.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, res.StatusCode)
			}
			if !strings.Contains(res.Message, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, res.Message)
			}
			if res.Data.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, res.Data.Title)
			}
			if res.OK() != (res.Err() == nil) {
				t.Error("OK and Err disagree")
			}
		})
	}
}

func TestClient_EnvelopeWithoutData(t *testing.T) {
	body := `{"statusCode":200,"message":"No tasks found"}`

	t.Run("list", func(t *testing.T) {
		srv, _ := stubServer(t, http.StatusOK, body)
		c := api.New(srv.URL, newSession(t, "tok"), api.WithLogger(discard))

		res := c.GetAllMyTasks(context.Background())
		if !res.OK() || len(res.Data) != 0 {
			t.Errorf("expected empty success, got %+v", res)
		}
	})

	t.Run("summary", func(t *testing.T) {
		srv, _ := stubServer(t, http.StatusOK, body)
		c := api.New(srv.URL, newSession(t, "tok"), api.WithLogger(discard))

		res := c.GetTaskSummary(context.Background())
		if !res.OK() || res.Data != (model.TaskSummary{}) {
			t.Errorf("expected zero summary, got %+v", res)
		}
		if res.Message != "No tasks found" {
			t.Errorf("expected envelope message, got %q", res.Message)
		}
	})

	t.Run("login body is flat", func(t *testing.T) {
		srv, _ := stubServer(t, http.StatusOK, `{"statusCode":200,"message":"Login successful","token":"abc","role":"USER"}`)
		c := api.New(srv.URL, newSession(t, ""), api.WithLogger(discard))

		res := c.LoginUser(context.Background(), model.Credentials{Email: "a@example.com", Password: "pw"})
		if !res.OK() || res.Data.Token != "abc" {
			t.Errorf("expected token abc, got %+v", res)
		}
	})
}

func TestClient_NoContent(t *testing.T) {
	srv, req := stubServer(t, http.StatusNoContent, "")
	c := api.New(srv.URL+"/", newSession(t, "tok"), api.WithLogger(discard))

	res := c.DeleteSubtask(context.Background(), "3")
	if !res.OK() || res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 success, got %+v", res)
	}
	if req.URL.Path != "/api/subtasks/3" || req.Method != http.MethodDelete {
		t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
	}
}

func TestClient_Headers(t *testing.T) {
	srv, req := stubServer(t, http.StatusOK, `[]`)
	c := api.New(srv.URL, newSession(t, "abc.def.ghi"), api.WithLogger(discard))

	res := c.GetAllMyTasks(context.Background())
	if !res.OK() {
		t.Fatalf("unexpected failure: %+v", res)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer abc.def.ghi" {
		t.Errorf("expected bearer header, got %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected json content type, got %q", got)
	}
	if req.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestClient_AuthCallsAreAnonymous(t *testing.T) {
	srv, req := stubServer(t, http.StatusOK, `{"statusCode":200,"token":"new-token","role":"USER"}`)
	c := api.New(srv.URL, newSession(t, "stale"), api.WithLogger(discard))

	res := c.LoginUser(context.Background(), model.Credentials{Name: "ignored", Email: "a@b.c", Password: "pw"})
	if !res.OK() || res.Data.Token != "new-token" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}
}

func TestClient_NotLoggedIn(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := api.New(srv.URL, newSession(t, ""), api.WithLogger(discard))
	res := c.GetTaskSummary(context.Background())

	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", res.StatusCode)
	}
	if res.Message != session.ErrNoToken.Error() {
		t.Errorf("expected %q, got %q", session.ErrNoToken.Error(), res.Message)
	}
	if called {
		t.Error("request should not reach the server without a token")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := api.New(url, newSession(t, "tok"), api.WithLogger(discard))
	res := c.GetAllMyTasks(context.Background())

	if res.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", res.StatusCode)
	}
	if res.Message == "" {
		t.Error("expected transport error message")
	}
	var apiErr *api.Error
	if err := res.Err(); !errors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Errorf("expected *api.Error with 500, got %v", err)
	}
}

func TestClient_ValidationShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := api.New(srv.URL, newSession(t, "tok"), api.WithLogger(discard))
	ctx := context.Background()

	update := c.UpdateTask(ctx, model.Task{Title: "x"})
	subtask := c.CreateSubtask(ctx, model.Subtask{TaskID: "undefined", Title: "x"})
	list := c.GetSubtasksByTaskID(ctx, "")

	tests := []struct {
		name string
		code int
		msg  string
	}{
		{"update without id", update.StatusCode, update.Message},
		{"subtask with placeholder id", subtask.StatusCode, subtask.Message},
		{"list without task id", list.StatusCode, list.Message},
	}
	for _, tt := range tests {
		if tt.code != http.StatusBadRequest || tt.msg != "Task ID must not be null" {
			t.Errorf("%s: expected 400 'Task ID must not be null', got %d %q", tt.name, tt.code, tt.msg)
		}
	}
	if called {
		t.Error("validation failures must not reach the server")
	}
}
