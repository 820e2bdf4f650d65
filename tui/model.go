// Package tui is the terminal chat surface: a scrolling transcript, a
// single-line input, and a status line. All pipeline work happens in
// commands so the interface stays responsive while a turn is running.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/poiesic/memoir/core"
)

// Chat is the TUI-facing subset of the assistant.
type Chat interface {
	Ask(ctx context.Context, input string) (string, error)
	History() []core.Turn
	Reset()
}

type answerMsg struct {
	answer string
}

type turnErrMsg struct {
	err error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	chat       Chat
	input      textinput.Model
	viewport   viewport.Model
	indexCount int
	status     string
	turnErr    string
	pending    string
	thinking   bool
	ready      bool
}

// New creates a new TUI model instance.
func New(chat Chat, indexCount int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your message here..."
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		chat:       chat,
		input:      ti,
		viewport:   vp,
		indexCount: indexCount,
		status:     "Memory loaded. Ask away. (ctrl+r resets, ctrl+c quits)",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + spacer, status, input frame
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, vh-th)
		m.refreshTranscript()
		return m, nil

	case answerMsg:
		m.thinking = false
		m.pending = ""
		m.turnErr = ""
		m.status = "Memory loaded. Ask away. (ctrl+r resets, ctrl+c quits)"
		m.refreshTranscript()
		return m, nil

	case turnErrMsg:
		// The turn failed; the question stays in the history, the
		// error is shown inline and the user may retry.
		m.thinking = false
		m.pending = ""
		m.turnErr = msg.err.Error()
		m.status = "That turn failed. Try again."
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+r":
			if !m.thinking {
				m.chat.Reset()
				m.turnErr = ""
				m.status = "Conversation reset."
				m.refreshTranscript()
				return m, nil
			}
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.thinking {
				m.input.SetValue("")
				m.thinking = true
				m.pending = q
				m.turnErr = ""
				m.status = "Thinking..."
				m.refreshTranscript()
				return m, askCmd(m.chat, q)
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Memoir — your story, remembered")
	indicator := indexIndicator(m.indexCount)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "  " + indicator + "\n\n" + transcript + "\n" + input + "\n" + status
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, turn := range m.chat.History() {
		b.WriteString(renderTurn(turn))
		b.WriteString("\n\n")
	}
	if m.pending != "" {
		b.WriteString(renderTurn(core.Turn{Role: core.RoleHuman, Content: m.pending}))
		b.WriteString("\n\n")
	}
	if m.turnErr != "" {
		b.WriteString(errStyle.Render("Oops! Something went wrong: " + m.turnErr))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTurn(turn core.Turn) string {
	if turn.Role == core.RoleHuman {
		return humanStyle.Render("You: " + turn.Content)
	}
	return aiStyle.Render("Memoir: " + turn.Content)
}

func indexIndicator(count int) string {
	if count > 0 {
		return okStyle.Render(fmt.Sprintf("memory loaded (%d excerpts)", count))
	}
	return errStyle.Render("memory not found")
}

func askCmd(chat Chat, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := chat.Ask(context.Background(), question)
		if err != nil {
			return turnErrMsg{err: err}
		}
		return answerMsg{answer: answer}
	}
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	humanStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	aiStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)
