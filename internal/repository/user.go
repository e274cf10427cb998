package repository

import (
	"context"

	"github.com/jaekwang-park/taskapp/internal/model"
)

type UserRepository interface {
	// Create fails with ErrDuplicate when the email is taken.
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}
