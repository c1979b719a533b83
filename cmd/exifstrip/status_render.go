package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"exifstrip/internal/preflight"
	"exifstrip/internal/report"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct {
	label string
	attr  color.Attribute
}{
	statusInfo:  {"INFO", color.FgBlue},
	statusOK:    {"OK", color.FgGreen},
	statusWarn:  {"WARN", color.FgYellow},
	statusError: {"ERROR", color.FgRed},
}

// checkStatus maps a preflight result to its doctor status. A failed
// optional check only warns.
func checkStatus(res preflight.Result) statusKind {
	switch {
	case res.Passed:
		return statusOK
	case res.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func renderCheckLine(res preflight.Result, colorize bool) string {
	return renderStatusLine(res.Name, checkStatus(res), res.Detail, colorize)
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	return report.Paint(colorize, style.attr)(line)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	blue := report.Paint(colorize, color.FgBlue)
	return []string{blue(line), blue(strings.Repeat("-", len(line)))}
}
