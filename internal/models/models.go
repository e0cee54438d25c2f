// package models defines the data model for the Lantern dashboard CLI
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the Lantern CLI.
// Implementations include VideoJob.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// User represents a dashboard user account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"` // admin, member
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// AIConfig represents the AI inference configuration document.
type AIConfig struct {
	Provider     string   `json:"provider"`
	Model        string   `json:"model"`
	Temperature  float64  `json:"temperature"`
	MaxTokens    int      `json:"max_tokens"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	Models       []string `json:"models,omitempty"` // models offered to dashboard users
}

// TranscriptionConfig represents the transcription configuration document.
type TranscriptionConfig struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Language    string `json:"language,omitempty"`
	Diarization bool   `json:"diarization"`
}

// ChatOptions tunes a single chat request. Zero values are omitted on the wire.
type ChatOptions struct {
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

// SubmitReceipt acknowledges a URL-sourced video submission.
type SubmitReceipt struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}
