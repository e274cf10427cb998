package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jaekwang-park/taskapp/internal/model"
)

type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUser(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, name, email, password_hash, role, created_at`

	row := r.db.QueryRowContext(ctx, query,
		user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.CreatedAt.UnixMilli(),
	)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, fmt.Errorf("%w: email %s", ErrDuplicate, user.Email)
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = ?`

	row := r.db.QueryRowContext(ctx, query, strings.ToLower(email))
	return scanUser(row)
}

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanUser(row)
}

func scanUser(row scannable) (model.User, error) {
	var (
		u         model.User
		id        int64
		createdAt int64
	)
	err := row.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &createdAt)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	u.ID = strconv.FormatInt(id, 10)
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return u, nil
}

var _ UserRepository = (*SQLiteUserRepository)(nil)
