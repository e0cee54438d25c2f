package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/models"
)

// Chatter defines the slice of the API client the TUI depends on.
type Chatter interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.Stream, error)
}

// chatEntry is one rendered turn of the conversation.
type chatEntry struct {
	role    string // "you" or the model name
	content string
}

type streamStartedMsg struct {
	stream *api.Stream
	err    error
}

type fragmentMsg struct {
	text string
	err  error
	done bool
}

// Model represents the chat TUI application state.
type Model struct {
	ctx       context.Context
	client    Chatter
	modelName string
	options   *models.ChatOptions

	viewport  viewport.Model
	textarea  textarea.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	entries   []chatEntry
	stream    *api.Stream
	streaming bool
	ready     bool
	width     int
	height    int
	err       error
}

// NewModel creates a new chat TUI model with the provided dependencies.
func NewModel(ctx context.Context, client Chatter, modelName string, options *models.ChatOptions) *Model {
	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:       ctx,
		client:    client,
		modelName: modelName,
		options:   options,
		textarea:  ta,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the textarea cursor blink.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// sendChat issues the chat request and hands back the opened stream.
func (m *Model) sendChat(message string) tea.Cmd {
	return func() tea.Msg {
		stream, err := m.client.Chat(m.ctx, api.ChatRequest{
			Model:   m.modelName,
			Message: message,
			Options: m.options,
		})
		return streamStartedMsg{stream: stream, err: err}
	}
}

// readFragment receives the next fragment from the open stream.
func (m *Model) readFragment() tea.Cmd {
	stream := m.stream
	return func() tea.Msg {
		text, err := stream.Recv()
		if err == io.EOF {
			return fragmentMsg{done: true}
		}
		if err != nil {
			return fragmentMsg{err: err}
		}
		return fragmentMsg{text: text}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - m.textarea.Height() - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(msg.Width - 2)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			if m.stream != nil {
				m.stream.Close()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.send):
			if m.streaming {
				return m, nil
			}
			message := strings.TrimSpace(m.textarea.Value())
			if message == "" {
				return m, nil
			}
			m.entries = append(m.entries, chatEntry{role: "you", content: message})
			m.textarea.Reset()
			m.streaming = true
			m.err = nil
			m.refreshViewport()
			return m, tea.Batch(m.sendChat(message), m.spinner.Tick)
		}

	case streamStartedMsg:
		if msg.err != nil {
			m.streaming = false
			m.err = msg.err
			m.refreshViewport()
			return m, nil
		}
		m.stream = msg.stream
		m.entries = append(m.entries, chatEntry{role: m.modelName, content: ""})
		return m, m.readFragment()

	case fragmentMsg:
		if msg.err != nil {
			m.streaming = false
			m.stream = nil
			m.err = msg.err
			m.refreshViewport()
			return m, nil
		}
		if msg.done {
			m.streaming = false
			m.stream = nil
			m.refreshViewport()
			return m, nil
		}
		// Fragments concatenate into the growing assistant message.
		m.entries[len(m.entries)-1].content += msg.text
		m.refreshViewport()
		return m, m.readFragment()

	case spinner.TickMsg:
		if !m.streaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

// refreshViewport re-renders the conversation and pins to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m *Model) renderConversation() string {
	var b strings.Builder
	for _, entry := range m.entries {
		label := styles.model.Render(entry.role + ":")
		if entry.role == "you" {
			label = styles.user.Render("you:")
		}
		b.WriteString(fmt.Sprintf("%s %s\n\n", label, entry.content))
	}
	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the chat interface.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := ""
	if m.streaming {
		status = m.spinner.View() + " thinking"
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		styles.title.Render(fmt.Sprintf("Lantern Chat (%s)", m.modelName)),
		m.viewport.View(),
		status,
		m.textarea.View(),
		styles.help.Render(m.help.View(m.keys)),
	)
}
