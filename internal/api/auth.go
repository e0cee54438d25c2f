package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/shared"
)

// loginRequest is the POST /api/auth/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the POST /api/auth/login result.
type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates with email and password, storing the returned token
// in the client session so subsequent requests carry the bearer header.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}

	var res loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", JSONBody(loginRequest{Email: email, Password: password}), &res); err != nil {
		return nil, err
	}

	if res.Token == "" {
		return nil, fmt.Errorf("%w: backend returned no token", shared.ErrAuthFailed)
	}

	if err := c.session.SetToken(res.Token, &res.User); err != nil {
		return nil, err
	}

	return &res.User, nil
}

// Profile fetches the current user. Without a token it resolves locally to
// a nil user, never contacting the server.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	if !c.session.Authenticated() {
		return nil, nil
	}

	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}

	c.session.SetUser(&user)
	return &user, nil
}

// Logout clears the local session. The token is invalidated locally; the
// backend is not contacted.
func (c *Client) Logout() error {
	return c.session.Clear()
}
