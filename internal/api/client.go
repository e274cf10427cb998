// Package api is a typed client for the task backend. Every operation maps
// to one endpoint and returns a Result.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/jaekwang-park/taskapp/internal/session"
)

const maxBodySize = 4 << 20 // 4 MB

type Client struct {
	baseURL string
	// authed attaches the bearer token; anon is used for /auth endpoints.
	authed *http.Client
	anon   *http.Client
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// WithTransport replaces the base transport (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New builds a client. tokens is consulted on every authenticated request,
// so a rotated or cleared token is seen on the next call.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	o := options{base: http.DefaultTransport, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	logged := &loggingTransport{base: o.base, logger: o.logger}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authed:  &http.Client{Transport: &oauth2.Transport{Source: tokens, Base: logged}},
		anon:    &http.Client{Transport: logged},
		logger:  o.logger,
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	anon   bool
	// flat responses carry statusCode beside the payload fields, not around them.
	flat   bool
}

func do[T any](ctx context.Context, c *Client, r request) Result[T] {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return failure[T](http.StatusInternalServerError, fmt.Sprintf("failed to encode request: %v", err))
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return failure[T](http.StatusInternalServerError, err.Error())
	}

	hc := c.authed
	if r.anon {
		hc = c.anon
	}
	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return failure[T](http.StatusUnauthorized, session.ErrNoToken.Error())
		}
		c.logger.WarnContext(ctx, "request failed", "method", r.method, "path", r.path, "error", err)
		return failure[T](http.StatusInternalServerError, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return failure[T](http.StatusInternalServerError, fmt.Sprintf("failed to read response: %v", err))
	}
	return decode[T](resp.StatusCode, raw, r.flat)
}

// envelope is the backend's {statusCode, message, data} wrapper.
type envelope struct {
	StatusCode *int            `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// decode normalizes a response. Bodies carrying statusCode are treated as
// an envelope: a non-2xx embedded code is a failure even under HTTP 200,
// and a data member is unwrapped; an envelope without data yields zero
// Data. Any other body, or any flat body, is the data itself.
func decode[T any](status int, raw []byte, flat bool) Result[T] {
	raw = bytes.TrimSpace(raw)

	var env envelope
	isObject := len(raw) > 0 && raw[0] == '{'
	if isObject {
		_ = json.Unmarshal(raw, &env)
	}

	if status < 200 || status >= 300 {
		msg := env.Message
		if msg == "" && env.Error != nil {
			msg = env.Error.Message
		}
		if msg == "" && !isObject && len(raw) > 0 && len(raw) < 512 {
			msg = string(raw)
		}
		return failure[T](status, msg)
	}

	if env.StatusCode != nil && *env.StatusCode != 0 && (*env.StatusCode < 200 || *env.StatusCode >= 300) {
		return failure[T](*env.StatusCode, env.Message)
	}

	out := Result[T]{StatusCode: status, Message: env.Message}
	if status == http.StatusNoContent || len(raw) == 0 {
		return out
	}

	payload := raw
	if env.StatusCode != nil && !flat {
		if env.Data == nil {
			return out
		}
		payload = env.Data
	}
	if bytes.Equal(payload, []byte("null")) {
		return out
	}
	if err := json.Unmarshal(payload, &out.Data); err != nil {
		return failure[T](http.StatusInternalServerError, fmt.Sprintf("failed to decode response: %v", err))
	}
	return out
}
