package style

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles is the full palette the progress engine renders with. Every
// substring the engine emits goes through exactly one of these.
type Styles struct {
	Accent  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

func Colored() Styles {
	return Styles{
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Info:    lipgloss.NewStyle().Faint(true),
	}
}

func Plain() Styles {
	return Styles{
		Accent:  lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Failure: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Info:    lipgloss.NewStyle(),
	}
}

// Detect picks the colored palette when w looks like a color-capable
// terminal and the plain one otherwise.
func Detect(w io.Writer) Styles {
	if ShouldColor(w) {
		return Colored()
	}
	return Plain()
}

func ShouldColor(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	return IsTerminal(w)
}

func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
