package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

// Senders names the agents whose messages feed the idea and code panels.
// They also get their own label colors.
type Senders struct {
	Idea string
	Code string
}

type theme struct {
	title      lipgloss.Style
	panel      lipgloss.Style
	panelTitle lipgloss.Style
	body       lipgloss.Style
	status     lipgloss.Style
	errStatus  lipgloss.Style
	input      lipgloss.Style
	other      lipgloss.Style
	senders    map[string]lipgloss.Style
}

func newTheme(s Senders) theme {
	blue := lipgloss.Color("#3B82F6")
	green := lipgloss.Color("#22C55E")
	firebrick := lipgloss.Color("#B22222")
	muted := lipgloss.Color("#9CA3AF")
	border := lipgloss.Color("#B3C7E6")

	senders := map[string]lipgloss.Style{
		protocol.SenderUser:   lipgloss.NewStyle().Foreground(firebrick).Bold(true),
		protocol.SenderSystem: lipgloss.NewStyle().Foreground(muted).Bold(true),
	}
	if s.Idea != "" {
		senders[s.Idea] = lipgloss.NewStyle().Foreground(blue).Bold(true)
	}
	if s.Code != "" {
		senders[s.Code] = lipgloss.NewStyle().Foreground(green).Bold(true)
	}

	return theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border),
		panelTitle: lipgloss.NewStyle().Bold(true),
		body:       lipgloss.NewStyle(),
		status:     lipgloss.NewStyle().Foreground(muted),
		errStatus:  lipgloss.NewStyle().Foreground(firebrick).Bold(true),
		input: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(border),
		other:   lipgloss.NewStyle().Bold(true),
		senders: senders,
	}
}

func (t theme) sender(name string) lipgloss.Style {
	if style, ok := t.senders[name]; ok {
		return style
	}
	return t.other
}
