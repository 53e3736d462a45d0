// Package confirm is a one-key y/n question rendered with bubbletea.
package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the answer the user gave
type Decision int

const (
	Undecided Decision = iota
	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

func (d Decision) IsAccepted() bool {
	return d == Accepted
}

type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Placeholder  lipgloss.Style
	Text         lipgloss.Style
}

// Model answers on the first matching key press; Esc and Ctrl-C deny
type Model struct {
	PromptPrefix string
	Prompt       string

	AcceptedText string
	DeniedText   string

	// DefaultValue is shown in upper case in the placeholder
	DefaultValue Decision

	Styles Styles

	selected Decision
	done     bool
	text     textinput.Model
}

func New(prompt string) *Model {
	return &Model{
		PromptPrefix: "? ",
		Prompt:       prompt,
		AcceptedText: "y",
		DeniedText:   "n",
		DefaultValue: Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

func (m *Model) Selected() Decision {
	return m.selected
}

func (m *Model) value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptedText
	case Denied:
		return m.DeniedText
	}
	return ""
}

func (m *Model) placeholder() string {
	yes, no := m.AcceptedText, m.DeniedText
	switch m.DefaultValue {
	case Accepted:
		yes = strings.ToUpper(yes)
	case Denied:
		no = strings.ToUpper(no)
	}
	return yes + "/" + no
}

func (m *Model) Init() tea.Cmd {
	input := textinput.New()
	input.Placeholder = m.placeholder()
	input.Prompt = strings.TrimSuffix(m.Prompt, " ") + " "
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = 1
	input.Focus()
	m.text = input
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	case tea.KeyEnter:
		return m.decide(m.DefaultValue)
	}

	s := keyMsg.String()
	if strings.ContainsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return m, nil
	}
	switch strings.ToLower(s) {
	case strings.ToLower(m.AcceptedText[:1]):
		return m.decide(Accepted)
	case strings.ToLower(m.DeniedText[:1]):
		return m.decide(Denied)
	}
	return m, nil
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}

	if m.done {
		// keep the question and answer on screen
		b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt + " "))
		b.WriteString(m.value())
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.text.View())
	return b.String()
}
