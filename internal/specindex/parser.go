package specindex

import "strings"

type frame struct {
	indent int
	key    string
}

// Parse scans a raw spec source (YAML, or prettified JSON with one key per
// line) and builds an Index mapping JSON pointers to source locations.
//
// prior, if non-nil, is the Index this one replaces; its version is carried
// forward incremented by one so callers can detect a rebuild in O(1).
func Parse(raw string, prior *Index) *Index {
	lines := splitLines(raw)
	spans := make(map[string]SourceSpan)
	var stack []frame

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			continue
		}

		indent := leadingWhitespace(line)

		key, keyColOffset, ok := extractYAMLKey(trimmed)
		if !ok {
			continue
		}
		keyCol := indent + keyColOffset

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, frame{indent: indent, key: key})

		pointer := buildJSONPointer(stack)
		spans[pointer] = SourceSpan{Line: i + 1, Col: keyCol}
	}

	return newIndex(spans, lines, prior)
}

// splitLines splits raw on "\n" and drops the trailing empty element left by
// a final newline, so "a:\nb:\n" yields two lines; an empty input produces
// zero lines.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// leadingWhitespace counts leading spaces and tabs; tabs count as one.
func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
		} else {
			break
		}
	}
	return n
}

// extractYAMLKey extracts the YAML key from a trimmed line, returning
// (key, colOffset, ok). colOffset is 2 when an array-item prefix "- " was
// consumed, 0 otherwise.
func extractYAMLKey(trimmed string) (string, int, bool) {
	effective := trimmed
	colOffset := 0
	if stripped, ok := strings.CutPrefix(trimmed, "- "); ok {
		effective = stripped
		colOffset = 2
	}

	if strings.HasPrefix(effective, `"`) || strings.HasPrefix(effective, "'") {
		quote := effective[0]
		rest := effective[1:]
		end := strings.IndexByte(rest, quote)
		if end < 0 {
			return "", 0, false
		}
		key := rest[:end]
		after := rest[end+1:]
		if !strings.HasPrefix(after, ":") {
			return "", 0, false
		}
		return key, colOffset, true
	}

	colon := strings.IndexByte(effective, ':')
	if colon < 0 {
		return "", 0, false
	}
	candidate := strings.TrimSpace(effective[:colon])
	if candidate == "" {
		return "", 0, false
	}
	return candidate, colOffset, true
}

// buildJSONPointer builds an RFC 6901 JSON pointer from the frame stack.
func buildJSONPointer(stack []frame) string {
	if len(stack) == 0 {
		return ""
	}
	var out strings.Builder
	for _, f := range stack {
		out.WriteByte('/')
		escapePointerSegment(f.key, &out)
	}
	return out.String()
}

// NormalizeToPointer normalizes a JSON pointer or a dotted path (with
// optional [n] bracket notation) to a JSON pointer.
func NormalizeToPointer(path string) string {
	if path == "" || strings.HasPrefix(path, "/") {
		return path
	}

	var out strings.Builder
	for _, segment := range strings.Split(path, ".") {
		rest := segment
		for rest != "" {
			bracketStart := strings.IndexByte(rest, '[')
			if bracketStart < 0 {
				out.WriteByte('/')
				escapePointerSegment(rest, &out)
				rest = ""
				continue
			}
			before := rest[:bracketStart]
			if before != "" {
				out.WriteByte('/')
				escapePointerSegment(before, &out)
			}
			tail := rest[bracketStart:]
			end := strings.IndexByte(tail, ']')
			if end < 0 {
				out.WriteByte('/')
				escapePointerSegment(rest, &out)
				rest = ""
				continue
			}
			index := tail[1:end]
			out.WriteByte('/')
			out.WriteString(index)
			rest = rest[bracketStart+end+1:]
		}
	}
	return out.String()
}

func escapePointerSegment(seg string, out *strings.Builder) {
	for _, r := range seg {
		switch r {
		case '~':
			out.WriteString("~0")
		case '/':
			out.WriteString("~1")
		default:
			out.WriteRune(r)
		}
	}
}
