package main

import (
	"context"
	"fmt"

	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges email and password for a session token and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("logging in", "email", email)

	user, err := r.client.Login(ctx, email, password)
	if err != nil {
		if api.IsCredential(err) {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if user != nil && user.Name != "" {
		return r.writePlain("✓ Logged in as %s (%s)\n", user.Name, user.Email)
	}
	return r.writePlain("✓ Logged in as %s\n", email)
}

// AuthLogout discards the stored session token. The backend is not contacted.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.client.Session().Authenticated() {
		return r.writePlain("Not logged in\n")
	}

	if err := r.client.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.logger.Info("session cleared")
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports whether a token is stored and whether the backend still accepts it.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if !r.client.Session().Authenticated() {
		return r.writePlain("✗ Not authenticated\n")
	}

	user, err := r.client.Profile(ctx)
	if err != nil {
		if api.IsCredential(err) {
			return r.writePlain("✗ Session expired, log in again\n")
		}
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Authenticated\n")
	if user != nil {
		r.writePlain("User: %s <%s>\n", user.Name, user.Email)
		r.writePlain("Role: %s\n", user.Role)
	}
	return nil
}

// AuthProfile fetches and prints the signed-in user's profile.
func (r *Runner) AuthProfile(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")

	user, err := r.client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if user == nil {
		return fmt.Errorf("%w: run `lantern auth login` first", shared.ErrNotAuthenticated)
	}

	return r.writeJSON(user, pretty)
}
