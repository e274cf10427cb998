// Package session holds the client's auth token and small UI preferences.
// The token is read from the backing store on every call, so a login or
// logout in another process takes effect on the next request.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/jaekwang-park/taskapp/internal/store"
)

var ErrNoToken = errors.New("not logged in")

const defaultReadTimeout = 2 * time.Second

type Session struct {
	kv          store.KV
	now         func() time.Time
	readTimeout time.Duration
}

func New(kv store.KV) *Session {
	return &Session{kv: kv, now: time.Now, readTimeout: defaultReadTimeout}
}

// WithReadTimeout bounds the store read made by Token.
func (s *Session) WithReadTimeout(d time.Duration) *Session {
	s.readTimeout = d
	return s
}

// WithClock overrides the clock used for expiry checks.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

func (s *Session) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to save empty token")
	}
	return s.kv.Set(ctx, store.KeyToken, token)
}

func (s *Session) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, store.KeyToken)
}

func (s *Session) RawToken(ctx context.Context) (string, error) {
	tok, err := s.kv.Get(ctx, store.KeyToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// IsAuthenticated reports whether a token is present. A token that parses
// as a JWT with an exp claim in the past counts as absent.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	tok, err := s.RawToken(ctx)
	if err != nil {
		return false
	}
	claims, err := parseClaims(tok)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return s.now().Before(claims.ExpiresAt.Time)
}

// Claims decodes the token payload without verifying its signature. Only
// the server can verify; the client reads sub and exp for display.
func (s *Session) Claims(ctx context.Context) (jwt.RegisteredClaims, error) {
	tok, err := s.RawToken(ctx)
	if err != nil {
		return jwt.RegisteredClaims{}, err
	}
	return parseClaims(tok)
}

// Token implements oauth2.TokenSource. It is called once per request.
// TokenSource carries no context, so the request's cancellation does not
// reach the store read; the read timeout bounds it instead.
func (s *Session) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.readTimeout)
	defer cancel()
	tok, err := s.RawToken(ctx)
	if err != nil {
		return nil, err
	}
	out := &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}
	if claims, err := parseClaims(tok); err == nil && claims.ExpiresAt != nil {
		out.Expiry = claims.ExpiresAt.Time
	}
	return out, nil
}

func parseClaims(tok string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return jwt.RegisteredClaims{}, fmt.Errorf("token is not a JWT: %w", err)
	}
	return claims, nil
}

var _ oauth2.TokenSource = (*Session)(nil)
