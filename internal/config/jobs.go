package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Jobs is the chunk size used for bounded parallel fan-out in the pipeline
// scheduler. It decodes from either the literal string "auto" (any case) or
// a positive integer.
type Jobs struct {
	Auto  bool
	Fixed int
}

// Resolve returns the concrete chunk size to use: Fixed verbatim, or
// available CPUs capped at 4 (never less than 1) for Auto.
func (j Jobs) Resolve() int {
	if !j.Auto {
		return j.Fixed
	}
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// MarshalYAML renders Auto as the string "auto" and Fixed as a plain integer.
func (j Jobs) MarshalYAML() (any, error) {
	if j.Auto {
		return "auto", nil
	}
	return j.Fixed, nil
}

// UnmarshalYAML accepts either the case-insensitive string "auto" or a
// positive integer; anything else is rejected.
func (j *Jobs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!str" {
		if !strings.EqualFold(value.Value, "auto") {
			return fmt.Errorf("config: jobs: unrecognized string %q, expected \"auto\"", value.Value)
		}
		*j = Jobs{Auto: true}
		return nil
	}

	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("config: jobs: expected \"auto\" or a positive integer: %w", err)
	}
	return j.fromInt(n)
}

func (j *Jobs) fromInt(n int) error {
	if n <= 0 {
		return fmt.Errorf("config: jobs: must be a positive integer, got %d", n)
	}
	*j = Jobs{Fixed: n}
	return nil
}

// String renders the value for display (e.g. in a --help default).
func (j Jobs) String() string {
	if j.Auto {
		return "auto"
	}
	return strconv.Itoa(j.Fixed)
}
