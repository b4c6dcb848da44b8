package result_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/tmc/internal/result"
)

func TestWriteAndReadSubmission(t *testing.T) {
	dir := t.TempDir()
	o := &result.SubmissionOutcome{
		TestCases: []result.TestOutcome{
			{Name: "FooTest", Successful: true},
			{Name: "BarTest", Message: "expected 1", DetailedMessage: []string{"line"}},
		},
		Status:           result.SubmissionOK,
		TestResultStatus: result.SomeFailed,
		Points:           []string{"1.1"},
	}
	require.NoError(t, result.WriteSubmission(dir, "ex-1", o))

	got, err := result.ReadStored(filepath.Join(dir, "submission", "ex-1.json"))
	require.NoError(t, err)
	assert.Equal(t, "ex-1", got.Exercise)
	assert.Equal(t, result.KindSubmission, got.Kind)
	assert.False(t, got.SavedAt.IsZero())
	assert.Equal(t, o, got.Submission)
	assert.Nil(t, got.Run)
}

func TestWriteAndReadRun(t *testing.T) {
	dir := t.TempDir()
	o := &result.RunOutcome{
		Status: result.RunGenericError,
		Logs:   map[string][]byte{result.LogGenericError: []byte("docker unavailable")},
	}
	require.NoError(t, result.WriteRun(dir, "ex-2", o))

	got, err := result.ReadStored(result.OutcomePath(dir, result.KindRun, "ex-2"))
	require.NoError(t, err)
	require.NotNil(t, got.Run)
	assert.Equal(t, "docker unavailable", string(got.Run.Logs[result.LogGenericError]))
}

func TestReadStoredRejectsMismatchedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"exercise":"x","kind":"run"}`), 0o644))
	_, err := result.ReadStored(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"exercise":"x","kind":"other"}`), 0o644))
	_, err = result.ReadStored(path)
	assert.Error(t, err)
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	runDir, err := result.CreateRunDir(base)
	require.NoError(t, err)
	_, err = os.Stat(runDir)
	require.NoError(t, err)

	target, err := os.Readlink(filepath.Join(base, "latest"))
	require.NoError(t, err)
	assert.Equal(t, runDir, target)
}

func TestComputeTestResultStatus(t *testing.T) {
	pass := result.TestOutcome{Name: "a", Successful: true}
	fail := result.TestOutcome{Name: "b"}

	tests := []struct {
		name  string
		tests []result.TestOutcome
		want  result.TestResultStatus
	}{
		{"no tests", nil, ""},
		{"all pass", []result.TestOutcome{pass, pass}, result.NoneFailed},
		{"all fail", []result.TestOutcome{fail, fail}, result.AllFailed},
		{"mixed", []result.TestOutcome{pass, fail}, result.SomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, result.ComputeTestResultStatus(tt.tests))
		})
	}
}
