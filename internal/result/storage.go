package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Kind identifies which outcome type a stored file holds.
type Kind string

const (
	KindSubmission Kind = "submission"
	KindRun        Kind = "run"
)

// Stored is the on-disk envelope for a saved outcome.
type Stored struct {
	Exercise   string             `json:"exercise"`
	Kind       Kind               `json:"kind"`
	SavedAt    time.Time          `json:"saved_at"`
	Submission *SubmissionOutcome `json:"submission,omitempty"`
	Run        *RunOutcome        `json:"run,omitempty"`
}

func CreateRunDir(baseDir string) (string, error) {
	runsDir := filepath.Join(baseDir, "runs")
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runDir := filepath.Join(runsDir, stamp)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

// OutcomePath is where the outcome of one exercise is saved within a run.
func OutcomePath(runDir string, kind Kind, exercise string) string {
	return filepath.Join(runDir, string(kind), exercise+".json")
}

func WriteSubmission(runDir, exercise string, o *SubmissionOutcome) error {
	return write(runDir, &Stored{Exercise: exercise, Kind: KindSubmission, Submission: o})
}

func WriteRun(runDir, exercise string, o *RunOutcome) error {
	return write(runDir, &Stored{Exercise: exercise, Kind: KindRun, Run: o})
}

func write(runDir string, s *Stored) error {
	path := OutcomePath(runDir, s.Kind, s.Exercise)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating outcome dir: %w", err)
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling outcome: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadStored loads a saved outcome and checks that its payload matches its kind.
func ReadStored(path string) (*Stored, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outcome: %w", err)
	}
	var s Stored
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing outcome: %w", err)
	}
	switch s.Kind {
	case KindSubmission:
		if s.Submission == nil {
			return nil, fmt.Errorf("parsing outcome %s: missing submission payload", path)
		}
	case KindRun:
		if s.Run == nil {
			return nil, fmt.Errorf("parsing outcome %s: missing run payload", path)
		}
	default:
		return nil, fmt.Errorf("parsing outcome %s: unknown kind %q", path, s.Kind)
	}
	return &s, nil
}
