package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastianaldrin/tux-agent/internal/lifecycle"
)

var (
	styleOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleFail     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleDeclined = lipgloss.NewStyle().Faint(true)
)

func glyph(status lifecycle.Status) string {
	switch status {
	case lifecycle.StatusOK:
		return styleOK.Render("✓")
	case lifecycle.StatusWarn:
		return styleWarn.Render("!")
	case lifecycle.StatusFatal:
		return styleFail.Render("✗")
	case lifecycle.StatusDeclined:
		return styleDeclined.Render("-")
	default:
		return styleDeclined.Render("·")
	}
}

func renderRecord(rec lifecycle.StepRecord) string {
	line := glyph(rec.Status) + " " + rec.Step
	if rec.Message != "" {
		line += ": " + rec.Message
	}
	return line
}
