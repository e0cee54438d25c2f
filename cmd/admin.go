package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/shared"
	"github.com/urfave/cli/v3"
)

// AdminUsersList prints every dashboard user.
func (r *Runner) AdminUsersList(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("listing users")

	users, err := r.client.ListUsers(ctx)
	if err != nil {
		return adminError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, true)
	}

	if len(users) == 0 {
		return r.writePlain("No users\n")
	}

	r.writePlainHeader(fmt.Sprintf("Users (%d)", len(users)))
	for _, user := range users {
		marker := " "
		if user.IsAdmin() {
			marker = "*"
		}
		r.writePlain("%s %-24s %s\n", marker, user.Email, user.Name)
	}
	return nil
}

// AdminUsersGet shows one user by ID.
func (r *Runner) AdminUsersGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id argument is required", shared.ErrMissingArgument)
	}

	user, err := r.client.GetUser(ctx, id)
	if err != nil {
		return adminError(err)
	}

	return r.writeJSON(user, true)
}

// AdminUsersCreate creates a new user account.
func (r *Runner) AdminUsersCreate(ctx context.Context, cmd *cli.Command) error {
	params := api.UserParams{
		Email:    cmd.String("email"),
		Name:     cmd.String("name"),
		Password: cmd.String("password"),
		Role:     cmd.String("role"),
	}

	r.logger.Info("creating user", "email", params.Email, "role", params.Role)

	user, err := r.client.CreateUser(ctx, params)
	if err != nil {
		return adminError(err)
	}

	r.writePlain("✓ User created\n")
	return r.writeJSON(user, true)
}

// AdminUsersUpdate updates the provided fields of a user.
func (r *Runner) AdminUsersUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id argument is required", shared.ErrMissingArgument)
	}

	params := api.UserParams{
		Email:    cmd.String("email"),
		Name:     cmd.String("name"),
		Password: cmd.String("password"),
		Role:     cmd.String("role"),
	}
	if params == (api.UserParams{}) {
		return fmt.Errorf("%w: at least one field flag is required", shared.ErrMissingArgument)
	}

	user, err := r.client.UpdateUser(ctx, id, params)
	if err != nil {
		return adminError(err)
	}

	r.writePlain("✓ User updated\n")
	return r.writeJSON(user, true)
}

// AdminUsersDelete removes a user account.
func (r *Runner) AdminUsersDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("deleting user", "id", id)

	if err := r.client.DeleteUser(ctx, id); err != nil {
		return adminError(err)
	}

	return r.writePlain("✓ User %s deleted\n", id)
}

// AdminAIConfigGet prints the current AI inference configuration.
func (r *Runner) AdminAIConfigGet(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.client.AIConfig(ctx)
	if err != nil {
		return adminError(err)
	}
	return r.writeJSON(cfg, true)
}

// AdminAIConfigSet replaces the AI configuration from a JSON document.
func (r *Runner) AdminAIConfigSet(ctx context.Context, cmd *cli.Command) error {
	data, err := shared.VerifyAndReadFile(cmd.String("file"))
	if err != nil {
		return err
	}

	var cfg models.AIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("updating AI configuration", "provider", cfg.Provider, "model", cfg.Model)

	if err := r.client.SetAIConfig(ctx, cfg); err != nil {
		return adminError(err)
	}

	return r.writePlain("✓ AI configuration updated\n")
}

// AdminTranscriptionGet prints the current transcription configuration.
func (r *Runner) AdminTranscriptionGet(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.client.TranscriptionConfig(ctx)
	if err != nil {
		return adminError(err)
	}
	return r.writeJSON(cfg, true)
}

// AdminTranscriptionSet replaces the transcription configuration from a JSON document.
func (r *Runner) AdminTranscriptionSet(ctx context.Context, cmd *cli.Command) error {
	data, err := shared.VerifyAndReadFile(cmd.String("file"))
	if err != nil {
		return err
	}

	var cfg models.TranscriptionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("updating transcription configuration", "provider", cfg.Provider, "model", cfg.Model)

	if err := r.client.SetTranscriptionConfig(ctx, cfg); err != nil {
		return adminError(err)
	}

	return r.writePlain("✓ Transcription configuration updated\n")
}

// adminError wraps client failures with the sentinel matching their category.
func adminError(err error) error {
	switch {
	case api.IsCredential(err):
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	case api.IsGeneric(err):
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
}
