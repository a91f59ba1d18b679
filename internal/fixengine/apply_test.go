package fixengine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func makeProposal(targetLine int, inserted []string) *Proposal {
	return &Proposal{
		Rule:        "test-rule",
		Description: "test fix",
		TargetLine:  targetLine,
		Inserted:    inserted,
	}
}

func TestApplyInsertsAfterTargetLine(t *testing.T) {
	path := writeTemp(t, "line1\nline2\nline3\n")
	proposal := makeProposal(2, []string{"  inserted_a", "  inserted_b"})

	if err := Apply(proposal, path); err != nil {
		t.Fatalf("apply: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	want := []string{"line1", "line2", "  inserted_a", "  inserted_b", "line3"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyAtEndOfFile(t *testing.T) {
	path := writeTemp(t, "line1\nline2\n")
	proposal := makeProposal(2, []string{"  appended"})

	if err := Apply(proposal, path); err != nil {
		t.Fatalf("apply: %v", err)
	}

	content, _ := os.ReadFile(path)
	got := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	want := []string{"line1", "line2", "  appended"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyPreservesTrailingNewline(t *testing.T) {
	path := writeTemp(t, "line1\nline2\n")
	proposal := makeProposal(1, []string{"  new"})

	if err := Apply(proposal, path); err != nil {
		t.Fatalf("apply: %v", err)
	}

	content, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(content), "\n") {
		t.Fatal("expected trailing newline to be preserved")
	}
}

func TestApplyTargetBeyondFileErrors(t *testing.T) {
	path := writeTemp(t, "line1\n")
	proposal := makeProposal(99, []string{"  bad"})

	if err := Apply(proposal, path); err == nil {
		t.Fatal("expected an error")
	}
}

func TestApplyCheckedRollsBackOnInvalidDocument(t *testing.T) {
	path := writeTemp(t, "openapi: 3.0.0\npaths: {}\n")
	original, _ := os.ReadFile(path)

	// Inserting a top-level "info" key with a scalar value still parses as
	// YAML but fails the schema's "info must be an object" check.
	proposal := makeProposal(1, []string{"info: not-an-object"})

	err := ApplyChecked(proposal, path)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	after, _ := os.ReadFile(path)
	if string(after) != string(original) {
		t.Fatal("expected rollback to original content")
	}
}

func TestApplyCheckedAcceptsValidDocument(t *testing.T) {
	path := writeTemp(t, "openapi: 3.0.0\ninfo:\n  title: x\n")
	proposal := makeProposal(3, []string{"  version: \"1.0\""})

	if err := ApplyChecked(proposal, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
