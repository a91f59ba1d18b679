package fixengine

import (
	"fmt"
	"strings"

	"github.com/entur/oav/internal/lintlog"
	"github.com/entur/oav/internal/specindex"
)

// Propose tries to generate a fix proposal for the given finding, given the
// spec index built from the same source and its raw lines. It returns
// (nil, false) if the rule is unsupported or the finding lacks the context
// the rule needs.
func Propose(finding lintlog.Finding, index *specindex.Index, lines []string) (*Proposal, bool) {
	switch finding.Rule {
	case "operation-summary":
		return proposeOperationSummary(finding, index, lines)
	case "operation-description":
		return proposeOperationDescription(finding, index, lines)
	case "info-contact":
		return proposeInfoContact(finding, index, lines)
	case "info-license":
		return proposeInfoLicense(finding, index, lines)
	default:
		return nil, false
	}
}

// detectChildIndent scans lines below parentLine (1-based) for the first
// non-blank, non-comment child and returns its whitespace prefix. Falls back
// to the parent's indent plus two spaces.
func detectChildIndent(lines []string, parentLine int) string {
	parentIdx := parentLine - 1
	parentIndent := leadingWhitespace(lines[parentIdx])

	for i := parentIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := leadingWhitespace(lines[i])
		if len(indent) > len(parentIndent) {
			return indent
		}
		break
	}

	return parentIndent + "  "
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// resolveOperationContext resolves the operation anchor line and its
// identifier (operationId if present, else the HTTP method) from a
// finding's JSON path.
func resolveOperationContext(finding lintlog.Finding, index *specindex.Index, lines []string) (opLine int, opID string, ok bool) {
	if finding.JSONPath == nil {
		return 0, "", false
	}
	span, found := index.Resolve(*finding.JSONPath)
	if !found {
		return 0, "", false
	}
	opLine = span.Line
	if opLine == 0 || opLine > len(lines) {
		return 0, "", false
	}

	childIndent := detectChildIndent(lines, opLine)
	if id, found := findChildFieldValue(lines, opLine, childIndent, "operationId"); found {
		opID = id
	} else {
		opID = strings.TrimSuffix(strings.TrimSpace(lines[opLine-1]), ":")
	}
	return opLine, opID, true
}

// findChildFieldValue finds the value of a child field below parentLine at
// the given indent.
func findChildFieldValue(lines []string, parentLine int, childIndent, fieldName string) (string, bool) {
	prefix := fieldName + ":"
	for i := parentLine; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := leadingWhitespace(lines[i])
		if len(indent) < len(childIndent) {
			break
		}
		if len(indent) == len(childIndent) && strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), true
		}
	}
	return "", false
}

// lastChildLine finds the last child line of the block starting at
// parentLine (1-based), or parentLine itself if it has no children.
func lastChildLine(lines []string, parentLine int) int {
	parentIdx := parentLine - 1
	parentIndentLen := len(leadingWhitespace(lines[parentIdx]))
	last := parentLine

	for i := parentIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if len(leadingWhitespace(lines[i])) <= parentIndentLen {
			break
		}
		last = i + 1
	}

	return last
}

// gatherContext collects up to radius lines before and after targetLine
// (1-based) for a diff preview.
func gatherContext(lines []string, targetLine, radius int) (before, after []string) {
	idx := targetLine - 1
	if idx < 0 {
		idx = 0
	}
	start := idx - radius
	if start < 0 {
		start = 0
	}
	beforeEnd := idx
	if beforeEnd > len(lines) {
		beforeEnd = len(lines)
	}
	before = append([]string{}, lines[start:beforeEnd]...)

	afterStart := idx
	if afterStart > len(lines) {
		afterStart = len(lines)
	}
	afterEnd := idx + radius
	if afterEnd > len(lines) {
		afterEnd = len(lines)
	}
	after = append([]string{}, lines[afterStart:afterEnd]...)
	return before, after
}

func proposeOperationSummary(finding lintlog.Finding, index *specindex.Index, lines []string) (*Proposal, bool) {
	opLine, opID, ok := resolveOperationContext(finding, index, lines)
	if !ok {
		return nil, false
	}
	indent := detectChildIndent(lines, opLine)
	inserted := []string{fmt.Sprintf(`%ssummary: "%s summary"`, indent, opID)}
	before, after := gatherContext(lines, opLine+1, 3)

	return &Proposal{
		Rule:          finding.Rule,
		Description:   "Add 'summary' field to the operation",
		TargetLine:    opLine,
		ContextBefore: before,
		Inserted:      inserted,
		ContextAfter:  after,
	}, true
}

func proposeOperationDescription(finding lintlog.Finding, index *specindex.Index, lines []string) (*Proposal, bool) {
	opLine, opID, ok := resolveOperationContext(finding, index, lines)
	if !ok {
		return nil, false
	}
	indent := detectChildIndent(lines, opLine)
	inserted := []string{fmt.Sprintf(`%sdescription: "%s description"`, indent, opID)}
	before, after := gatherContext(lines, opLine+1, 3)

	return &Proposal{
		Rule:          finding.Rule,
		Description:   "Add 'description' field to the operation",
		TargetLine:    opLine,
		ContextBefore: before,
		Inserted:      inserted,
		ContextAfter:  after,
	}, true
}

func proposeInfoContact(finding lintlog.Finding, index *specindex.Index, lines []string) (*Proposal, bool) {
	span, found := index.Resolve("/info")
	if !found {
		return nil, false
	}
	infoLine := span.Line
	childIndent := detectChildIndent(lines, infoLine)
	nestedIndent := childIndent + "  "
	target := lastChildLine(lines, infoLine)

	inserted := []string{
		childIndent + "contact:",
		nestedIndent + `name: ""`,
		nestedIndent + `url: ""`,
	}
	before, after := gatherContext(lines, target+1, 3)

	return &Proposal{
		Rule:          finding.Rule,
		Description:   "Add 'contact' block under /info",
		TargetLine:    target,
		ContextBefore: before,
		Inserted:      inserted,
		ContextAfter:  after,
	}, true
}

func proposeInfoLicense(finding lintlog.Finding, index *specindex.Index, lines []string) (*Proposal, bool) {
	span, found := index.Resolve("/info")
	if !found {
		return nil, false
	}
	infoLine := span.Line
	childIndent := detectChildIndent(lines, infoLine)
	nestedIndent := childIndent + "  "
	target := lastChildLine(lines, infoLine)

	inserted := []string{
		childIndent + "license:",
		nestedIndent + `name: ""`,
	}
	before, after := gatherContext(lines, target+1, 3)

	return &Proposal{
		Rule:          finding.Rule,
		Description:   "Add 'license' block under /info",
		TargetLine:    target,
		ContextBefore: before,
		Inserted:      inserted,
		ContextAfter:  after,
	}, true
}
