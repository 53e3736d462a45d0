package confirm

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Ask shows m on out, reading keys from in, and returns the decision.
// Anything but an explicit yes counts as no.
func Ask(m *Model, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false, err
	}
	return m.Selected().IsAccepted(), nil
}

// Overwrite asks before an existing target is replaced
type Overwrite struct {
	In  io.Reader
	Out io.Writer
}

func (o Overwrite) ConfirmOverwrite(target string) (bool, error) {
	return Ask(New(fmt.Sprintf("%q already exists. Overwrite?", target)), o.In, o.Out)
}
