package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1    lipgloss.Style
	Header2    lipgloss.Style
	ObjectName lipgloss.Style
	Table      lipgloss.Style
	View       lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
}

// DefaultStyles returns the standard style set. Tables and views use the
// same colors the diagram export does.
func DefaultStyles() Styles {
	return Styles{
		Header1:    lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:    lipgloss.NewStyle().Bold(true),
		ObjectName: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Table:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		View:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// FormatHeader renders a markdown heading.
func FormatHeader(level int, text string) string {
	prefix := ""
	for i := 0; i < level; i++ {
		prefix += "#"
	}
	return prefix + " " + text
}

// FormatKeyValue renders a markdown key-value bullet.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
