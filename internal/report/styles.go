package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Severity styles
	Debug    lipgloss.Style
	Info     lipgloss.Style
	Warn     lipgloss.Style
	Error    lipgloss.Style
	Critical lipgloss.Style
	Unknown  lipgloss.Style

	// Report styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Muted   lipgloss.Style
}{
	// Severities - distinctive colors
	Debug:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),                            // Gray
	Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),                             // Cyan
	Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),                            // Orange
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),                 // Red bold
	Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true), // Magenta bold underline
	Unknown:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),                            // White

	// Report
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// SeverityStyle returns the style for a severity name
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "DEBUG":
		return Styles.Debug
	case "INFO":
		return Styles.Info
	case "WARNING":
		return Styles.Warn
	case "ERROR":
		return Styles.Error
	case "CRITICAL":
		return Styles.Critical
	default:
		return Styles.Unknown
	}
}

// StatusText returns styled overall status text for a report
func StatusText(errorCount, criticalCount int) string {
	if criticalCount > 0 {
		return Styles.Danger.Render("CRITICAL EVENTS DETECTED")
	}
	if errorCount > 0 {
		return Styles.Warning.Render("ERRORS DETECTED")
	}
	return Styles.Success.Render("OK")
}
