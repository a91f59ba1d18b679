package lintlog

import (
	"strconv"
	"strings"
)

// Parse reads raw stylish-format lint output (Spectral / Redocly) into
// structured findings. It is total: unparseable lines are skipped rather
// than returning an error, and input with no recognizable entries yields
// an empty, non-nil slice.
//
// Expected entry layout:
//
//	/path/to/spec.yaml
//	  2:6   warning  info-contact  Info object should contain `contact` object.
//	 10:3   error    my-rule-one   Tags must have a description.                tags[0]
//
//	✖ 2 problems (1 error, 1 warning, 0 infos, 0 hints)
func Parse(raw string) []Finding {
	findings := []Finding{}

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Non-indented lines are file headers; skip them.
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")

		// Summary lines start with a cross mark.
		if strings.HasPrefix(trimmed, "✖") || strings.HasPrefix(trimmed, "×") {
			continue
		}

		if f, ok := parseEntry(trimmed); ok {
			findings = append(findings, f)
		}
	}

	return findings
}

// parseEntry parses one trimmed entry line:
// "line:col  severity  rule-id  message  [json-path]".
func parseEntry(trimmed string) (Finding, bool) {
	tokens := strings.Fields(trimmed)
	if len(tokens) < 3 {
		return Finding{}, false
	}

	line, col, ok := parseLocation(tokens[0])
	if !ok {
		return Finding{}, false
	}

	severity := severityFromString(tokens[1])
	rule := tokens[2]
	rest := tokens[3:]

	if len(rest) == 0 {
		return Finding{Line: line, Col: col, Severity: severity, Rule: rule}, true
	}

	message, jsonPath := splitMessageAndPath(rest)
	return Finding{
		Line:     line,
		Col:      col,
		Severity: severity,
		Rule:     rule,
		Message:  message,
		JSONPath: jsonPath,
	}, true
}

// parseLocation parses "line:col" into two positive integers.
func parseLocation(s string) (line, col int, ok bool) {
	l, c, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	line, err := strconv.Atoi(l)
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, false
	}
	if line < 1 || col < 1 {
		return 0, 0, false
	}
	return line, col, true
}

// splitMessageAndPath splits the remaining tokens into a message and an
// optional trailing JSON path/pointer.
func splitMessageAndPath(tokens []string) (string, *string) {
	if len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if looksLikeJSONPath(last) {
			message := strings.Join(tokens[:len(tokens)-1], " ")
			return message, &last
		}
	}
	message := strings.Join(tokens, " ")
	return message, nil
}

// looksLikeJSONPath reports whether token looks like a JSON path
// (paths./users.get, tags[0], info.contact) or a JSON pointer
// (/paths/~1users/get). When in doubt, this returns false — ambiguous
// trailing tokens are treated as part of the message, not a path.
func looksLikeJSONPath(token string) bool {
	if token == "" {
		return false
	}
	if strings.HasPrefix(token, "/") {
		return true
	}
	if strings.Contains(token, "[") {
		return true
	}
	if strings.Contains(token, ".") {
		stripped := strings.TrimRight(token, ".")
		if strings.Contains(stripped, ".") {
			return true
		}
	}
	return false
}
