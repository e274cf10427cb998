package http

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jaekwang-park/taskapp/internal/http/handler"
	"github.com/jaekwang-park/taskapp/internal/middleware"
	"github.com/jaekwang-park/taskapp/internal/repository"
	"github.com/jaekwang-park/taskapp/internal/service"
)

type Services struct {
	// DB backs the health check; nil skips the database ping.
	DB       *sql.DB
	Tasks    *service.TaskService
	Subtasks *service.SubtaskService
	Auth     *service.AuthService
}

// NewServices wires the SQLite repositories in db to the services.
func NewServices(db *sql.DB, logger *slog.Logger, jwtSecret string, tokenTTL time.Duration) Services {
	tasks := repository.NewSQLiteTask(db)
	return Services{
		DB:       db,
		Tasks:    service.NewTaskService(tasks, logger),
		Subtasks: service.NewSubtaskService(tasks, repository.NewSQLiteSubtask(db)),
		Auth:     service.NewAuthService(repository.NewSQLiteUser(db), jwtSecret, tokenTTL),
	}
}

func NewRouter(svcs Services) http.Handler {
	r := mux.NewRouter()

	var db handler.Pinger
	if svcs.DB != nil {
		db = svcs.DB
	}
	r.Handle("/health", handler.NewHealthHandler(db))

	auth := handler.NewAuthHandler(svcs.Auth)
	r.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	tasks := handler.NewTaskHandler(svcs.Tasks)
	t := r.PathPrefix("/api/tasks").Subrouter()
	t.HandleFunc("", tasks.Create).Methods(http.MethodPost)
	t.HandleFunc("/all", tasks.List).Methods(http.MethodGet)
	t.HandleFunc("/status", tasks.ListByStatus).Methods(http.MethodGet)
	t.HandleFunc("/priority", tasks.ListByPriority).Methods(http.MethodGet)
	t.HandleFunc("/search", tasks.Search).Methods(http.MethodGet)
	t.HandleFunc("/overdue", tasks.Overdue).Methods(http.MethodGet)
	t.HandleFunc("/summary", tasks.Summary).Methods(http.MethodGet)
	t.HandleFunc("/reminder-status", tasks.ReminderStatus).Methods(http.MethodGet)
	t.HandleFunc("/task/{id}", tasks.Get).Methods(http.MethodGet)
	t.HandleFunc("/task/{id}", tasks.Delete).Methods(http.MethodDelete)
	t.HandleFunc("/{id}", tasks.Update).Methods(http.MethodPut)

	subtasks := handler.NewSubtaskHandler(svcs.Subtasks)
	s := r.PathPrefix("/api/subtasks").Subrouter()
	s.HandleFunc("", subtasks.Create).Methods(http.MethodPost)
	s.HandleFunc("/task/{id}/subtasks", subtasks.ListByTask).Methods(http.MethodGet)
	s.HandleFunc("/toggle/{id}", subtasks.Toggle).Methods(http.MethodPut)
	s.HandleFunc("/{id}", subtasks.Update).Methods(http.MethodPut)
	s.HandleFunc("/{id}", subtasks.Delete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, "endpoint not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// NewHandler applies the middleware chain: recovery -> logging -> auth -> router.
func NewHandler(logger *slog.Logger, svcs Services) http.Handler {
	auth := middleware.NewAuth(svcs.Auth)
	return middleware.Recovery(logger)(middleware.Logging(logger)(auth.Middleware(NewRouter(svcs))))
}
