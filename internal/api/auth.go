package api

import (
	"context"
	"net/http"

	"github.com/jaekwang-park/taskapp/internal/model"
)

func (c *Client) RegisterUser(ctx context.Context, creds model.Credentials) Result[model.AuthResponse] {
	return do[model.AuthResponse](ctx, c, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   creds,
		anon:   true,
		flat:   true,
	})
}

// LoginUser exchanges credentials for a token. Name is not sent.
func (c *Client) LoginUser(ctx context.Context, creds model.Credentials) Result[model.AuthResponse] {
	creds.Name = ""
	return do[model.AuthResponse](ctx, c, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   creds,
		anon:   true,
		flat:   true,
	})
}
