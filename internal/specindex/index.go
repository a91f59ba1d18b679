package specindex

// Index maps JSON pointers to source locations, plus the raw source lines
// and a rebuild version for cache invalidation.
type Index struct {
	spans    map[string]SourceSpan
	rawLines []string
	version  uint64
}

// newIndex builds an Index inheriting the next version number from prior.
// prior may be nil for the first build.
func newIndex(spans map[string]SourceSpan, rawLines []string, prior *Index) *Index {
	var version uint64 = 1
	if prior != nil {
		version = prior.version + 1
	}
	return &Index{spans: spans, rawLines: rawLines, version: version}
}

// Resolve looks up a JSON pointer or dotted path and returns its source
// location.
func (idx *Index) Resolve(path string) (SourceSpan, bool) {
	pointer := NormalizeToPointer(path)
	span, ok := idx.spans[pointer]
	return span, ok
}

// ContextWindow extracts up to radius lines above and below the given
// 1-based line, clamped to the document bounds. It returns false if line is
// out of range.
func (idx *Index) ContextWindow(line, radius int) (ContextWindow, bool) {
	if line <= 0 || line > len(idx.rawLines) {
		return ContextWindow{}, false
	}
	start := line - radius
	if start < 1 {
		start = 1
	}
	end := line + radius
	if end > len(idx.rawLines) {
		end = len(idx.rawLines)
	}
	lines := append([]string{}, idx.rawLines[start-1:end]...)
	return ContextWindow{StartLine: start, Lines: lines, TargetLine: line}, true
}

// LineCount returns the number of raw source lines indexed.
func (idx *Index) LineCount() int {
	return len(idx.rawLines)
}

// Lines returns the raw source lines.
func (idx *Index) Lines() []string {
	return idx.rawLines
}

// Version is a monotonically increasing counter across rebuilds of the same
// logical spec; cache consumers compare it instead of hashing content.
func (idx *Index) Version() uint64 {
	return idx.version
}
