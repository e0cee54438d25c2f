// Package models defines domain entities and persistence interfaces for the Lantern dashboard CLI.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing backend data
//   - [User] : Dashboard user accounts returned by auth and admin endpoints
//   - [AIConfig] : AI inference configuration document
//   - [TranscriptionConfig] : Transcription configuration document
//   - [ChatOptions] : Per-request chat tuning parameters
//   - [SubmitReceipt] : Acknowledgement for a URL-sourced video submission
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [VideoJob] : Locally recorded video submissions with status tracking
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
