// Admin endpoints: user CRUD and configuration documents.
//
// All calls are bearer-authenticated and require the admin role on the
// backend; an insufficient role surfaces as a credential-category error.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nocturnedev/lantern/internal/models"
)

// UserParams carries fields for creating or updating a dashboard user.
// Empty fields are omitted so partial updates only touch provided values.
type UserParams struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ListUsers retrieves all dashboard users.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a dashboard user.
func (c *Client) CreateUser(ctx context.Context, params UserParams) (*models.User, error) {
	if params.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/admin/users", JSONBody(params), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id string, params UserParams) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(id), JSONBody(params), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user. The backend answers 204; success carries no
// payload.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil, nil)
}

// AIConfig retrieves the AI inference configuration document.
func (c *Client) AIConfig(ctx context.Context) (*models.AIConfig, error) {
	var cfg models.AIConfig
	if err := c.do(ctx, http.MethodGet, "/api/admin/ai/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetAIConfig replaces the AI inference configuration document.
func (c *Client) SetAIConfig(ctx context.Context, cfg models.AIConfig) error {
	return c.do(ctx, http.MethodPut, "/api/admin/ai/config", JSONBody(cfg), nil)
}

// TranscriptionConfig retrieves the transcription configuration document.
func (c *Client) TranscriptionConfig(ctx context.Context) (*models.TranscriptionConfig, error) {
	var cfg models.TranscriptionConfig
	if err := c.do(ctx, http.MethodGet, "/api/admin/transcription/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetTranscriptionConfig replaces the transcription configuration document.
func (c *Client) SetTranscriptionConfig(ctx context.Context, cfg models.TranscriptionConfig) error {
	return c.do(ctx, http.MethodPut, "/api/admin/transcription/config", JSONBody(cfg), nil)
}
