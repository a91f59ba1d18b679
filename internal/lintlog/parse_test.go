package lintlog

import "testing"

func TestSpectralStylishMultiError(t *testing.T) {
	input := `/path/to/spec.yaml
  2:6   warning  info-contact       Info object should contain ` + "`contact`" + ` object.
 10:3   error    my-rule-one        Tags must have a description.                tags[0]
  5:12  error    oas3-schema        Schema should have a description.            paths./users.get

✖ 3 problems (2 errors, 1 warning, 0 infos, 0 hints)
`
	findings := Parse(input)
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d: %+v", len(findings), findings)
	}

	f0 := findings[0]
	if f0.Line != 2 || f0.Col != 6 || f0.Severity != Warning || f0.Rule != "info-contact" {
		t.Fatalf("unexpected finding 0: %+v", f0)
	}
	if f0.Message != "Info object should contain `contact` object." {
		t.Fatalf("unexpected message: %q", f0.Message)
	}
	if f0.JSONPath != nil {
		t.Fatalf("expected no json path, got %v", *f0.JSONPath)
	}

	f1 := findings[1]
	if f1.Line != 10 || f1.Col != 3 || f1.Severity != Error || f1.Rule != "my-rule-one" {
		t.Fatalf("unexpected finding 1: %+v", f1)
	}
	if f1.Message != "Tags must have a description." {
		t.Fatalf("unexpected message: %q", f1.Message)
	}
	if f1.JSONPath == nil || *f1.JSONPath != "tags[0]" {
		t.Fatalf("unexpected json path: %v", f1.JSONPath)
	}

	f2 := findings[2]
	if f2.Line != 5 || f2.Col != 12 || f2.Severity != Error {
		t.Fatalf("unexpected finding 2: %+v", f2)
	}
	if f2.JSONPath == nil || *f2.JSONPath != "paths./users.get" {
		t.Fatalf("unexpected json path: %v", f2.JSONPath)
	}
}

func TestRedoclyStylish(t *testing.T) {
	input := `/home/user/api.yaml
  1:1   warning  no-empty-servers   Servers list should not be empty.
 42:5   error    operation-summary  Operation must have a summary.              /paths/~1pets/get

✖ 2 problems (1 error, 1 warning, 0 infos, 0 hints)
`
	findings := Parse(input)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].Severity != Warning || findings[0].Rule != "no-empty-servers" {
		t.Fatalf("unexpected finding 0: %+v", findings[0])
	}
	f1 := findings[1]
	if f1.Severity != Error || f1.Line != 42 || f1.Col != 5 {
		t.Fatalf("unexpected finding 1: %+v", f1)
	}
	if f1.JSONPath == nil || *f1.JSONPath != "/paths/~1pets/get" {
		t.Fatalf("unexpected json path: %v", f1.JSONPath)
	}
}

func TestLineWithoutJSONPath(t *testing.T) {
	full := "/spec.yaml\n  3:1  warning  some-rule  This is a message without a path.\n"
	findings := Parse(full)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Message != "This is a message without a path." {
		t.Fatalf("unexpected message: %q", findings[0].Message)
	}
	if findings[0].JSONPath != nil {
		t.Fatalf("expected no json path")
	}
}

func TestLineWithJSONPath(t *testing.T) {
	input := "/spec.yaml\n  7:14  error  path-rule  Must be valid.  paths./foo.bar\n"
	findings := Parse(input)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Message != "Must be valid." {
		t.Fatalf("unexpected message: %q", findings[0].Message)
	}
	if findings[0].JSONPath == nil || *findings[0].JSONPath != "paths./foo.bar" {
		t.Fatalf("unexpected json path: %v", findings[0].JSONPath)
	}
}

func TestEmptyInput(t *testing.T) {
	if findings := Parse(""); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestGarbageInput(t *testing.T) {
	garbage := "this is not lint output\nrandom text\n\n"
	if findings := Parse(garbage); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestSummaryLineSkipped(t *testing.T) {
	input := "✖ 5 problems (3 errors, 2 warnings, 0 infos, 0 hints)\n"
	if findings := Parse(input); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(Error > Warning) || !(Warning > Info) || !(Info > Hint) || !(Error > Hint) {
		t.Fatal("severity ordering violated")
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{Error: "error", Warning: "warning", Info: "info", Hint: "hint"}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestUnknownSeverityDefaultsToWarning(t *testing.T) {
	input := "/spec.yaml\n  1:1  banana  some-rule  A message.\n"
	findings := Parse(input)
	if len(findings) != 1 || findings[0].Severity != Warning {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestInfoAndHintSeverities(t *testing.T) {
	input := `/spec.yaml
  1:1  info       info-rule   Info level finding.
  2:1  hint       hint-rule   Hint level finding.
  3:1  information info-rule2 Another info finding.
`
	findings := Parse(input)
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(findings))
	}
	if findings[0].Severity != Info || findings[1].Severity != Hint || findings[2].Severity != Info {
		t.Fatalf("unexpected severities: %+v", findings)
	}
}
