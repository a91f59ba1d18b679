// Package lintlog parses "stylish"-format linter output (the Spectral and
// Redocly convention) into structured findings.
package lintlog

import "strings"

// Severity ranks a Finding. Error outranks Warning outranks Info outranks
// Hint.
type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
)

// String renders the severity the way the linters themselves print it.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "warning"
	}
}

// severityFromString maps a token to a Severity, defaulting to Warning for
// anything unrecognized.
func severityFromString(s string) Severity {
	switch strings.ToLower(s) {
	case "error":
		return Error
	case "warning":
		return Warning
	case "info", "information":
		return Info
	case "hint":
		return Hint
	default:
		return Warning
	}
}
