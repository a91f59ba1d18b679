package fixengine

import (
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Apply inserts proposal.Inserted after proposal.TargetLine in the file at
// specPath, preserving whether the file originally ended with a trailing
// newline. It fails if TargetLine is beyond the file's length.
func Apply(proposal *Proposal, specPath string) error {
	content, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("fixengine: read %s: %w", specPath, err)
	}

	trailingNewline := strings.HasSuffix(string(content), "\n")
	lines := splitLines(string(content))

	if proposal.TargetLine > len(lines) {
		return fmt.Errorf("fixengine: target_line %d is beyond file length %d", proposal.TargetLine, len(lines))
	}

	out := make([]string, 0, len(lines)+len(proposal.Inserted))
	out = append(out, lines[:proposal.TargetLine]...)
	out = append(out, proposal.Inserted...)
	out = append(out, lines[proposal.TargetLine:]...)

	output := strings.Join(out, "\n")
	if trailingNewline {
		output += "\n"
	}

	if err := os.WriteFile(specPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("fixengine: write %s: %w", specPath, err)
	}
	return nil
}

// splitLines mirrors the line semantics Apply needs: a trailing newline does
// not produce a spurious empty final element.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// validateSchemaJSON is a minimal structural sanity check used by
// ApplyChecked: the document root must be an object, and info, if present,
// must be an object.
const validateSchemaJSON = `{
	"type": "object",
	"properties": {
		"info": {"type": "object"}
	}
}`

func compileValidateSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("fixengine-validate.json", strings.NewReader(validateSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("fixengine-validate.json")
}

// Validate decodes applied (candidate post-fix document bytes) and, if it
// parses as a YAML mapping, runs it through a minimal structural schema. It
// never fails merely because the pre-existing document doesn't parse —
// Apply's byte-exact contract is unaffected by this check.
func Validate(applied []byte) error {
	var doc any
	if err := yaml.Unmarshal(applied, &doc); err != nil {
		return nil
	}
	asMap, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	schema, err := compileValidateSchema()
	if err != nil {
		return fmt.Errorf("fixengine: compile validation schema: %w", err)
	}
	if err := schema.Validate(asMap); err != nil {
		return fmt.Errorf("fixengine: fix produced an invalid document: %w", err)
	}
	return nil
}

// ApplyChecked applies proposal like Apply, then validates the result and
// rolls back (restoring the original bytes) if validation fails.
func ApplyChecked(proposal *Proposal, specPath string) error {
	original, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("fixengine: read %s: %w", specPath, err)
	}

	if err := Apply(proposal, specPath); err != nil {
		return err
	}

	applied, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("fixengine: read applied %s: %w", specPath, err)
	}

	if err := Validate(applied); err != nil {
		if writeErr := os.WriteFile(specPath, original, 0o644); writeErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, writeErr)
		}
		return err
	}
	return nil
}
