// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a chat session against the dashboard backend: a viewport
// renders the conversation, a textarea accepts the next message, and
// assistant replies stream in fragment by fragment as the backend produces
// them. Each fragment arrives as a message through the standard
// Init/Update/View loop, so a long reply renders incrementally without
// blocking input handling.
//
// Keyboard bindings: enter sends, ctrl+c or esc quits, with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
