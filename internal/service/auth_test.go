package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/repository"
	"github.com/jaekwang-park/taskapp/internal/service"
)

const testSecret = "test-secret-0123456789"

// memUsers is a mockUserRepo backed by a map.
func memUsers() *mockUserRepo {
	users := map[string]model.User{}
	return &mockUserRepo{
		createFn: func(ctx context.Context, u model.User) (model.User, error) {
			if _, ok := users[u.Email]; ok {
				return model.User{}, repository.ErrDuplicate
			}
			u.ID = "42"
			users[u.Email] = u
			return u, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (model.User, error) {
			u, ok := users[email]
			if !ok {
				return model.User{}, sql.ErrNoRows
			}
			return u, nil
		},
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := service.NewAuthService(memUsers(), testSecret, time.Hour).WithClock(clock)
	ctx := context.Background()
	creds := model.Credentials{Name: "Ana", Email: "ana@example.com", Password: "hunter22"}

	reg, err := svc.Register(ctx, creds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Token == "" || reg.Role != service.RoleUser {
		t.Errorf("unexpected register response: %+v", reg)
	}

	if _, err := svc.Register(ctx, creds); !errors.Is(err, service.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate, got %v", err)
	}

	login, err := svc.Login(ctx, creds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userID, err := svc.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "42" {
		t.Errorf("expected sub=42, got %s", userID)
	}

	bad := creds
	bad.Password = "wrong-password"
	if _, err := svc.Login(ctx, bad); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		creds model.Credentials
	}{
		{name: "bad email", creds: model.Credentials{Email: "not-an-email", Password: "hunter22"}},
		{name: "short password", creds: model.Credentials{Email: "a@example.com", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewAuthService(memUsers(), testSecret, time.Hour)
			if _, err := svc.Register(context.Background(), tt.creds); !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	users := memUsers()
	issuer := service.NewAuthService(users, testSecret, time.Minute).WithClock(clock)
	resp, err := issuer.Register(context.Background(), model.Credentials{Email: "a@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	later := service.NewAuthService(users, testSecret, time.Minute).WithClock(func() time.Time {
		return now.Add(time.Hour)
	})
	if _, err := later.ParseToken(resp.Token); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}

	other := service.NewAuthService(users, "another-secret-0123456789", time.Minute).WithClock(clock)
	if _, err := other.ParseToken(resp.Token); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign signature, got %v", err)
	}
}
