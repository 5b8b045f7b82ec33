package display

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailored-agentic-units/chatroom/artifact"
	"github.com/tailored-agentic-units/chatroom/chatroom"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/observability"
)

const (
	appTitle        = "ChaosChat"
	statusConnected = "Connected"
	sideWidthRatio  = 3 // side column takes 1/sideWidthRatio of the width
	minSideWidth    = 24
	chromeHeight    = 5 // title, input and status lines
)

// messageMsg carries an appended conversation message into the UI loop.
type messageMsg struct {
	msg protocol.Message
}

// statusMsg replaces the status bar text.
type statusMsg struct {
	text string
	busy bool
}

// injectDoneMsg reports the outcome of submitting user input.
type injectDoneMsg struct {
	err error
}

// TUI is the full-screen renderer. It is a chatroom sink and an observer:
// both hand their payload to the bubbletea loop with Program.Send, so all
// rendering happens in Update.
type TUI struct {
	program *tea.Program
}

// NewTUI creates a TUI that submits typed lines to inject. senders selects
// which agents feed the idea and code panels.
func NewTUI(inject Injector, senders Senders, opts ...tea.ProgramOption) *TUI {
	return &TUI{program: tea.NewProgram(newModel(inject, senders), opts...)}
}

// Run blocks until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		t.program.Quit()
	}()

	_, err := t.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (t *TUI) OnMessage(msg protocol.Message) {
	t.program.Send(messageMsg{msg: msg})
}

func (t *TUI) OnEvent(_ context.Context, event observability.Event) {
	if status, ok := statusFor(event); ok {
		t.program.Send(status)
	}
}

// statusFor maps coordinator events onto the status bar.
func statusFor(event observability.Event) (statusMsg, bool) {
	switch event.Type {
	case chatroom.EventTurnStart:
		name, _ := event.Data["agent"].(string)
		return statusMsg{text: fmt.Sprintf("%s is typing...", name), busy: true}, true
	case chatroom.EventReply, chatroom.EventIdle, chatroom.EventStart:
		return statusMsg{text: statusConnected}, true
	case chatroom.EventError:
		name, _ := event.Data["agent"].(string)
		cause, _ := event.Data["error"].(string)
		return statusMsg{text: fmt.Sprintf("%s failed: %s", name, cause)}, true
	}
	return statusMsg{}, false
}

type model struct {
	inject Injector
	board  *artifact.Board
	theme  theme

	entries []string
	status  string
	busy    bool
	failed  bool

	width  int
	height int

	transcript viewport.Model
	idea       viewport.Model
	code       viewport.Model
	input      textinput.Model
	spinner    spinner.Model
}

func newModel(inject Injector, senders Senders) model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Say something to the agents"
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		inject:     inject,
		board:      artifact.NewBoard(senders.Idea, senders.Code),
		theme:      newTheme(senders),
		status:     statusConnected,
		transcript: viewport.New(0, 0),
		idea:       viewport.New(0, 0),
		code:       viewport.New(0, 0),
		input:      input,
		spinner:    sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderPanels()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			return m, m.injectCmd(text)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}

	case messageMsg:
		m.entries = append(m.entries, m.renderEntry(msg.msg))
		m.board.Apply(msg.msg)
		m.renderPanels()
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.busy = msg.busy
		m.failed = false
		return m, nil

	case injectDoneMsg:
		if msg.err != nil {
			m.status = "Send failed: " + msg.err.Error()
			m.failed = true
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// injectCmd submits text off the UI loop. The coordinator notifies sinks
// while holding its append lock, and this sink's notifications wait on the
// UI loop, so injecting from Update directly would deadlock.
func (m model) injectCmd(text string) tea.Cmd {
	inject := m.inject
	return func() tea.Msg {
		return injectDoneMsg{err: inject.InjectUserMessage(text)}
	}
}

func (m model) renderEntry(msg protocol.Message) string {
	header := m.theme.sender(msg.Sender).Render(Header(msg))
	return header + " " + strings.TrimRight(msg.Content, "\n")
}

func (m *model) resize() {
	sideWidth := max(minSideWidth, m.width/sideWidthRatio)
	mainWidth := max(20, m.width-sideWidth-4)
	bodyHeight := max(6, m.height-chromeHeight-2)

	m.transcript.Width = mainWidth
	m.transcript.Height = bodyHeight

	panelHeight := max(2, bodyHeight/2-3)
	m.idea.Width = sideWidth - 2
	m.idea.Height = panelHeight
	m.code.Width = sideWidth - 2
	m.code.Height = panelHeight

	m.input.Width = max(10, m.width-4)
}

func (m *model) renderPanels() {
	wrap := lipgloss.NewStyle().Width(max(10, m.transcript.Width))
	m.transcript.SetContent(wrap.Render(strings.Join(m.entries, "\n\n")))
	m.transcript.GotoBottom()

	m.idea.SetContent(lipgloss.NewStyle().Width(max(10, m.idea.Width)).Render(m.board.Idea()))
	m.code.SetContent(m.board.Code())
}

func (m model) View() string {
	if m.width == 0 {
		return "Connecting..."
	}

	title := m.theme.title.Render(appTitle)

	transcript := m.theme.panel.Render(m.transcript.View())
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.panelTitle.Render("Current Idea"),
		m.theme.panel.Render(m.idea.View()),
		m.theme.panelTitle.Render("Current Code"),
		m.theme.panel.Render(m.code.View()),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, transcript, side)

	input := m.theme.input.Width(max(10, m.width-2)).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, input, m.statusLine())
}

func (m model) statusLine() string {
	switch {
	case m.failed:
		return m.theme.errStatus.Render(m.status)
	case m.busy:
		return m.theme.status.Render(m.spinner.View() + " " + m.status)
	default:
		return m.theme.status.Render(m.status)
	}
}
