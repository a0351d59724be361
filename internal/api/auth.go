package api

import (
	"context"
	"net/http"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// AuthResult is the body of successful login/register responses.
type AuthResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

// Login exchanges credentials for a token. Invalid credentials come back as
// a 401 and surface as domain.EUNAUTHORIZED with the backend's message.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out AuthResult
	if err := c.do(ctx, "api.auth.login", http.MethodPost, "/auth/login/", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the token server-side. Callers treat failure as
// best-effort; the session is cleared locally regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "api.auth.logout", http.MethodPost, "/auth/logout/", nil, struct{}{}, nil)
}

// Register creates a staff account. Validation failures surface as a
// domain.ValidationError carrying the backend's field errors.
func (c *Client) Register(ctx context.Context, params domain.RegisterParams) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, "api.auth.register", http.MethodPost, "/auth/register/", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser validates the token in ctx by fetching the user it belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, "api.auth.me", http.MethodGet, "/auth/me/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
