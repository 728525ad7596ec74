package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm displays a warning box and asks a yes/no question on w, reading
// the answer from r. Only "y" or "yes" (any case) confirms.
func Confirm(r io.Reader, w io.Writer, title string, warnings []string) bool {
	width := GetTerminalWidth()

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title)),
		"",
	}
	for _, warning := range warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render("   • "+warning))
	}
	lines = append(lines, "")

	_, _ = fmt.Fprintln(w, boxStyle(WarningColor, width).Render(strings.Join(lines, "\n")))
	_, _ = fmt.Fprint(w, WarningTitleStyle.Render("Continue? [y/N]: "))

	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && input == "" {
		_, _ = fmt.Fprintln(w)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}

	_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Foreground(MutedColor).Render("  Cancelled."))
	return false
}
