// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, chatCommand, videoCommand, adminCommand, apiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// authCommand handles session lifecycle against the dashboard backend.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with the dashboard backend",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password, stores the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show whether a session token is stored and still accepted",
				Action: r.AuthStatus,
			},
			{
				Name:  "profile",
				Usage: "Fetch the signed-in user's profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.AuthProfile,
			},
		},
	}
}

// chatCommand handles streaming chat with the configured model.
func chatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Chat with the dashboard's AI models",
		Commands: []*cli.Command{
			{
				Name:  "send",
				Usage: "Send one message and stream the reply to stdout",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "message",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "model",
						Aliases: []string{"m"},
						Usage:   "Model to chat with (default: from config)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Attach a file to the message",
					},
					&cli.FloatFlag{
						Name:  "temperature",
						Usage: "Sampling temperature override",
					},
					&cli.IntFlag{
						Name:  "max-tokens",
						Usage: "Response token limit override",
					},
					&cli.StringFlag{
						Name:  "system",
						Usage: "System prompt override",
					},
				},
				Action: r.ChatSend,
			},
			{
				Name:  "ui",
				Usage: "Open an interactive chat session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "model",
						Aliases: []string{"m"},
						Usage:   "Model to chat with (default: from config)",
					},
				},
				Action: r.ChatUI,
			},
		},
	}
}

// videoCommand handles video upload, analysis and local job bookkeeping.
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"vid"},
		Usage:   "Upload and analyze videos",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Upload a video file for analysis",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prompt",
						Usage: "Analysis instruction sent alongside the video",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the analysis to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "stream-upload",
						Usage: "Stream the file from disk instead of buffering (disables progress)",
					},
				},
				Action: r.VideoAnalyze,
			},
			{
				Name:  "submit",
				Usage: "Submit a video by URL for server-side download and analysis",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "Source URL of the video",
						Required: true,
					},
				},
				Action: r.VideoSubmit,
			},
			{
				Name:  "jobs",
				Usage: "List locally tracked analysis jobs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by job status",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Listing format (text or markdown)",
						Value: "text",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideoJobs,
			},
			{
				Name:  "batch",
				Usage: "Analyze every video in a directory with a worker pool",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Directory to scan for video files",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory for analysis files",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of concurrent workers",
						Value:   3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Maximum uploads per second",
						Value: 1.0,
					},
					&cli.StringFlag{
						Name:  "prompt",
						Usage: "Analysis instruction applied to every file",
					},
				},
				Action: r.VideoBatch,
			},
		},
	}
}

// adminCommand handles user management and backend configuration documents.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Administrative operations (requires an admin account)",
		Commands: []*cli.Command{
			{
				Name:  "users",
				Usage: "Manage dashboard users",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List all users",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "json",
								Usage: "Output raw JSON",
							},
						},
						Action: r.AdminUsersList,
					},
					{
						Name:  "get",
						Usage: "Show one user",
						Arguments: []cli.Argument{
							&cli.StringArg{
								Name: "id",
							},
						},
						Action: r.AdminUsersGet,
					},
					{
						Name:  "create",
						Usage: "Create a user",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "email",
								Usage:    "Email address",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "name",
								Usage: "Display name",
							},
							&cli.StringFlag{
								Name:     "password",
								Usage:    "Initial password",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "role",
								Usage: "Role (user or admin)",
								Value: "user",
							},
						},
						Action: r.AdminUsersCreate,
					},
					{
						Name:  "update",
						Usage: "Update a user's fields",
						Arguments: []cli.Argument{
							&cli.StringArg{
								Name: "id",
							},
						},
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "email",
								Usage: "New email address",
							},
							&cli.StringFlag{
								Name:  "name",
								Usage: "New display name",
							},
							&cli.StringFlag{
								Name:  "password",
								Usage: "New password",
							},
							&cli.StringFlag{
								Name:  "role",
								Usage: "New role",
							},
						},
						Action: r.AdminUsersUpdate,
					},
					{
						Name:  "delete",
						Usage: "Delete a user",
						Arguments: []cli.Argument{
							&cli.StringArg{
								Name: "id",
							},
						},
						Action: r.AdminUsersDelete,
					},
				},
			},
			{
				Name:  "ai-config",
				Usage: "Inspect or replace the AI inference configuration",
				Commands: []*cli.Command{
					{
						Name:   "get",
						Usage:  "Show the current AI configuration",
						Action: r.AdminAIConfigGet,
					},
					{
						Name:  "set",
						Usage: "Replace the AI configuration from a JSON file",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "file",
								Aliases:  []string{"f"},
								Usage:    "Path to a JSON configuration document",
								Required: true,
							},
						},
						Action: r.AdminAIConfigSet,
					},
				},
			},
			{
				Name:  "transcription-config",
				Usage: "Inspect or replace the transcription configuration",
				Commands: []*cli.Command{
					{
						Name:   "get",
						Usage:  "Show the current transcription configuration",
						Action: r.AdminTranscriptionGet,
					},
					{
						Name:  "set",
						Usage: "Replace the transcription configuration from a JSON file",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "file",
								Aliases:  []string{"f"},
								Usage:    "Path to a JSON configuration document",
								Required: true,
							},
						},
						Action: r.AdminTranscriptionSet,
					},
				},
			},
		},
	}
}

// apiCommand handles direct calls against the dashboard backend.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the dashboard backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the raw response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the generated file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
