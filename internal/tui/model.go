// Package tui is an interactive terminal chat client over the answerer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reviewrag/internal/answerer"
)

// AnswerPort is the TUI-facing subset of the answerer.
type AnswerPort interface {
	Ask(ctx context.Context, question string) answerer.Outcome
}

type turn struct {
	question string
	reply    string
	kind     answerer.Kind
	elapsed  time.Duration
}

type answerMsg struct {
	question string
	out      answerer.Outcome
	elapsed  time.Duration
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service  AnswerPort
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	status   string
	ready    bool
	waiting  bool
}

// New creates a new chat model instance.
func New(service AnswerPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the reviews and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, status: "Corpus loaded. Ask away."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input box + spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTurns())
		return m, nil
	case answerMsg:
		m.waiting = false
		m.turns = append(m.turns, turn{
			question: msg.question,
			reply:    msg.out.Reply(),
			kind:     msg.out.Kind,
			elapsed:  msg.elapsed,
		})
		m.status = statusFor(msg.out.Kind, msg.elapsed)
		m.viewport.SetContent(m.renderTurns())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.input.SetValue("")
				m.waiting = true
				m.status = "Thinking..."
				return m, m.ask(q)
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		out := m.service.Ask(context.Background(), question)
		return answerMsg{question: question, out: out, elapsed: time.Since(start)}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Review Chat")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTurns() string {
	if len(m.turns) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + t.question))
		b.WriteString("\n")
		b.WriteString(t.reply)
	}
	return b.String()
}

func statusFor(kind answerer.Kind, elapsed time.Duration) string {
	switch kind {
	case answerer.KindNoContext:
		return fmt.Sprintf("No matching context (%.1fs)", elapsed.Seconds())
	case answerer.KindError:
		return fmt.Sprintf("Collaborator error (%.1fs)", elapsed.Seconds())
	default:
		return fmt.Sprintf("Answered in %.1fs", elapsed.Seconds())
	}
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
