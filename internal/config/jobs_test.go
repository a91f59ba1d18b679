package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func decodeJobs(t *testing.T, doc string) (Jobs, error) {
	t.Helper()
	var wrapper struct {
		Jobs Jobs `yaml:"jobs"`
	}
	err := yaml.Unmarshal([]byte(doc), &wrapper)
	return wrapper.Jobs, err
}

func TestJobsUnmarshalAutoString(t *testing.T) {
	j, err := decodeJobs(t, "jobs: auto\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.Auto {
		t.Fatal("expected Auto=true")
	}
}

func TestJobsUnmarshalAutoCaseInsensitive(t *testing.T) {
	j, err := decodeJobs(t, "jobs: AUTO\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.Auto {
		t.Fatal("expected Auto=true")
	}
}

func TestJobsUnmarshalFixedInt(t *testing.T) {
	j, err := decodeJobs(t, "jobs: 3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.Auto || j.Fixed != 3 {
		t.Fatalf("unexpected jobs: %+v", j)
	}
}

func TestJobsUnmarshalRejectsZero(t *testing.T) {
	if _, err := decodeJobs(t, "jobs: 0\n"); err == nil {
		t.Fatal("expected error for zero")
	}
}

func TestJobsUnmarshalRejectsNegative(t *testing.T) {
	if _, err := decodeJobs(t, "jobs: -1\n"); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestJobsUnmarshalRejectsUnknownString(t *testing.T) {
	if _, err := decodeJobs(t, "jobs: sometimes\n"); err == nil {
		t.Fatal("expected error for unrecognized string")
	}
}

func TestJobsResolveFixed(t *testing.T) {
	j := Jobs{Fixed: 7}
	if got := j.Resolve(); got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestJobsResolveAutoIsBoundedBetween1And4(t *testing.T) {
	j := Jobs{Auto: true}
	got := j.Resolve()
	if got < 1 || got > 4 {
		t.Fatalf("expected resolve in [1,4], got %d", got)
	}
}
