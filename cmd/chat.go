package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/shared"
	"github.com/nocturnedev/lantern/internal/ui"
	"github.com/urfave/cli/v3"
)

// chatModel resolves the model name from the flag or the config default.
func (r *Runner) chatModel(cmd *cli.Command) string {
	if model := cmd.String("model"); model != "" {
		return model
	}
	return r.config.Chat.Model
}

// chatOptions folds config defaults and flag overrides into request options.
func (r *Runner) chatOptions(cmd *cli.Command) *models.ChatOptions {
	opts := models.ChatOptions{
		Temperature: r.config.Chat.Temperature,
		MaxTokens:   r.config.Chat.MaxTokens,
	}

	if cmd.IsSet("temperature") {
		opts.Temperature = cmd.Float("temperature")
	}
	if cmd.IsSet("max-tokens") {
		opts.MaxTokens = cmd.Int("max-tokens")
	}
	if cmd.IsSet("system") {
		opts.SystemPrompt = cmd.String("system")
	}

	if opts == (models.ChatOptions{}) {
		return nil
	}
	return &opts
}

// ChatSend sends one message and streams the model's reply to the output.
func (r *Runner) ChatSend(ctx context.Context, cmd *cli.Command) error {
	message := cmd.StringArg("message")
	if message == "" {
		return fmt.Errorf("%w: message argument is required", shared.ErrMissingArgument)
	}

	req := api.ChatRequest{
		Model:   r.chatModel(cmd),
		Message: message,
		Options: r.chatOptions(cmd),
	}

	if path := cmd.String("file"); path != "" {
		content, err := shared.VerifyAndReadFile(path)
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		req.Attachment = &api.Attachment{
			Filename:    filepath.Base(path),
			ContentType: contentType,
			Content:     content,
		}
	}

	r.logger.Info("sending chat message", "model", req.Model)

	stream, err := r.client.Chat(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer stream.Close()

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			r.writePlain("\n")
			return fmt.Errorf("stream interrupted: %w", err)
		}
		r.writePlain("%s", fragment)
	}

	return r.writePlain("\n")
}

// ChatUI opens the interactive chat session.
func (r *Runner) ChatUI(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/lantern-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.client, r.chatModel(cmd), r.chatOptions(cmd))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
