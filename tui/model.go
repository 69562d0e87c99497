package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// entry is one rendered line group in the transcript.
type entry struct {
	speaker string
	text    string
	kind    entryKind
	at      time.Time
}

type entryKind int

const (
	entryMessage entryKind = iota
	entryChoice
	entryFact
	entrySystem
)

// Model is the chat replay TUI model. The transcript is append-only and
// driven entirely by messages sent from the playback runner.
type Model struct {
	viewport viewport.Model
	entries  []entry

	width  int
	height int

	typingSpeaker string
	done          bool
	lastError     string

	ready bool
}

// NewModel creates a new chat replay model.
func NewModel() Model {
	vp := viewport.New(80, 20)
	vp.Style = LogStyle
	vp.SetContent("")

	return Model{
		viewport: vp,
		entries:  []entry{},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Layout: transcript (fills) + status bar (2 lines incl. border)
		transcriptHeight := m.height - 2
		if transcriptHeight < 5 {
			transcriptHeight = 5
		}
		m.viewport.Width = m.width
		m.viewport.Height = transcriptHeight
		m.ready = true
		m.updateContent()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case TypingMsg:
		m.typingSpeaker = msg.Speaker
		m.updateContent()

	case MessageShownMsg:
		m.typingSpeaker = ""
		m.entries = append(m.entries, entry{
			speaker: msg.Speaker,
			text:    msg.Text,
			kind:    entryMessage,
			at:      msg.At,
		})
		m.updateContent()

	case ChoicePickedMsg:
		m.entries = append(m.entries, entry{
			text: msg.Label,
			kind: entryChoice,
			at:   msg.At,
		})
		m.updateContent()

	case FactMsg:
		m.entries = append(m.entries, entry{
			text: msg.Text,
			kind: entryFact,
			at:   msg.At,
		})
		m.updateContent()

	case PlaybackDoneMsg:
		m.done = true
		m.typingSpeaker = ""
		m.entries = append(m.entries, entry{
			text: "conversation complete. press q to exit.",
			kind: entrySystem,
			at:   time.Now(),
		})
		m.updateContent()

	case PlaybackErrorMsg:
		m.lastError = msg.Error
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	status := m.statusLine()
	content := m.viewport.View() + "\n" + status

	baseStyle := lipgloss.NewStyle().
		Background(ColorBg).
		Width(m.width).
		Height(m.height)

	return baseStyle.Render(content)
}

// updateContent renders all transcript entries and sets viewport content.
func (m *Model) updateContent() {
	wasAtBottom := m.viewport.AtBottom()

	var lines []string
	blank := lipgloss.NewStyle().Background(ColorBg).Width(m.width)
	for _, e := range m.entries {
		lines = append(lines, m.renderEntry(e)...)
		lines = append(lines, blank.Render(""))
	}

	if m.typingSpeaker != "" {
		lines = append(lines, TypingStyle.Render(m.typingSpeaker+" is typing..."))
	}

	if len(lines) == 0 {
		m.viewport.SetContent(DimmedStyle.Render("Waiting for the conversation to start."))
		return
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// renderEntry renders one transcript entry as styled lines.
func (m Model) renderEntry(e entry) []string {
	timestamp := DimmedStyle.Render("[" + e.at.Format("15:04:05") + "] ")

	switch e.kind {
	case entryChoice:
		return []string{timestamp + SelfStyle.Render("> "+e.text)}
	case entryFact:
		return []string{timestamp + FactStyle.Render("* "+e.text)}
	case entrySystem:
		return []string{timestamp + SystemStyle.Render(e.text)}
	default:
		label := HostStyle.Render(e.speaker + ":")
		return []string{timestamp + label + " " + e.text}
	}
}

// statusLine renders the bottom status bar.
func (m Model) statusLine() string {
	var left string
	switch {
	case m.lastError != "":
		left = ErrorStyle.Render("error: " + m.lastError)
	case m.done:
		left = DimmedStyle.Render("done")
	case m.typingSpeaker != "":
		left = DimmedStyle.Render("playing")
	default:
		left = DimmedStyle.Render("idle")
	}

	right := DimmedStyle.Render(fmt.Sprintf("%d messages | q to quit", len(m.entries)))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Background(ColorBg).Render(strings.Repeat(" ", gap)) + right
	return StatusBarStyle.Width(m.width).Render(line)
}

// Key bindings
var keys = struct {
	Quit key.Binding
}{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

// Message types for external communication
type (
	// TypingMsg is sent when a speaker's typing indicator should show.
	TypingMsg struct {
		Speaker string
	}

	// MessageShownMsg is sent when a scripted message should appear.
	MessageShownMsg struct {
		Speaker string
		Text    string
		At      time.Time
	}

	// ChoicePickedMsg is sent when scripted playback takes a choice.
	ChoicePickedMsg struct {
		Label string
		At    time.Time
	}

	// FactMsg is sent when a background fact is ready to display.
	FactMsg struct {
		Text string
		At   time.Time
	}

	// PlaybackDoneMsg is sent when the script finishes.
	PlaybackDoneMsg struct{}

	// PlaybackErrorMsg is sent when playback fails.
	PlaybackErrorMsg struct {
		Error string
	}
)
