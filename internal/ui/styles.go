// Package ui holds terminal styling for the wizard and command output.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Banner  lipgloss.Style
	Header  lipgloss.Style
	Step    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warn    lipgloss.Style
	Info    lipgloss.Style
	Accent  lipgloss.Style
	Subtle  lipgloss.Style
	URL     lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00C7B7")).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00C7B7")).
			Bold(true),

		Step: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3DDC97")).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5C5C")).
			Bold(true),

		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454")),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),

		URL: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00C7B7")).
			Underline(true),
	}
}

// Successf prints a checkmarked line in the success style.
func (s Styles) Successf(format string, args ...any) {
	fmt.Println(s.Success.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Errorf prints a crossed line in the error style.
func (s Styles) Errorf(format string, args ...any) {
	fmt.Println(s.Error.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func (s Styles) Warnf(format string, args ...any) {
	fmt.Println(s.Warn.Render("! " + fmt.Sprintf(format, args...)))
}

// Infof prints a subdued informational line.
func (s Styles) Infof(format string, args ...any) {
	fmt.Println(s.Info.Render(fmt.Sprintf(format, args...)))
}

// Stepf prints a numbered wizard step header.
func (s Styles) Stepf(n, total int, title string) {
	fmt.Println()
	fmt.Println(s.Step.Render(fmt.Sprintf("Step %d/%d: %s", n, total, title)))
}
