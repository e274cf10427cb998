package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/repository"
)

const (
	RoleUser          = "USER"
	minPasswordLength = 6
)

// Claims is the payload of tokens issued by AuthService.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService registers users and issues HS256 tokens.
type AuthService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the clock used for token timestamps.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Register(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	email := strings.TrimSpace(creds.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.AuthResponse{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(creds.Password) < minPasswordLength {
		return model.AuthResponse{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Name:         strings.TrimSpace(creds.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.AuthResponse{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return model.AuthResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user, "User registered successfully")
}

func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	if creds.Email == "" || creds.Password == "" {
		return model.AuthResponse{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AuthResponse{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return model.AuthResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return model.AuthResponse{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.issue(user, "Successfully logged in")
}

// ParseToken verifies an issued token and returns its user id.
func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: sub claim not found", ErrUnauthorized)
	}
	return claims.Subject, nil
}

func (s *AuthService) issue(user model.User, message string) (model.AuthResponse, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.AuthResponse{
		StatusCode:     200,
		Message:        message,
		Token:          signed,
		Role:           user.Role,
		ExpirationTime: expires.UTC().Format(time.RFC3339),
	}, nil
}
