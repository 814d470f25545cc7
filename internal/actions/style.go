package actions

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))
	outputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5CFF5C"))
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8EEBFF"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6F93"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F56")).Bold(true)
)

// field renders "label: value" with value in style
func field(label string, value any, style lipgloss.Style) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), style.Render(fmt.Sprint(value)))
}
