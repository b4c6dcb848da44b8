//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/signalnine/tmc/internal/config"
	"github.com/signalnine/tmc/internal/docker"
	"github.com/signalnine/tmc/internal/report"
	"github.com/signalnine/tmc/internal/result"
	"github.com/signalnine/tmc/internal/runner"
	"github.com/signalnine/tmc/internal/workdir"
)

// createFixtureCourse creates a course with one passing and one uncompilable exercise.
func createFixtureCourse(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	course := "course: fixture\nexercises:\n  - name: passing\n  - name: broken\n    command: echo 'Main.java:3: error' && exit 1\n"
	if err := os.WriteFile(filepath.Join(dir, config.CourseFile), []byte(course), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"passing", "broken"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLocalTestRunIntegration(t *testing.T) {
	if os.Getenv("TMC_DOCKER_TESTS") == "" {
		t.Skip("set TMC_DOCKER_TESTS=1 to run integration tests")
	}

	wd, err := workdir.Find(createFixtureCourse(t))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	exercises, err := wd.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	runDir, err := result.CreateRunDir(t.TempDir())
	if err != nil {
		t.Fatalf("CreateRunDir: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tester := &runner.Tester{Run: docker.RunContainer, Log: zerolog.Nop(), SaveDir: runDir}
	outcomes, err := tester.RunAll(ctx, exercises, runner.TestOpts{
		Image:       "alpine:latest",
		Command:     `echo '[{"name":"Main works","successful":true}]' > .tmc_test_results.json`,
		ResultsFile: ".tmc_test_results.json",
		Timeout:     time.Minute,
	}, 2, nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if got := outcomes[0].Status; got != result.RunPassed {
		t.Errorf("passing: got %s, want %s", got, result.RunPassed)
	}
	if got := outcomes[1].Status; got != result.RunCompileFailed {
		t.Errorf("broken: got %s, want %s", got, result.RunCompileFailed)
	}

	var buf bytes.Buffer
	if err := report.Summarize(runDir, "markdown", &buf); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("passing")) || !bytes.Contains(buf.Bytes(), []byte("broken")) {
		t.Errorf("summary missing exercises:\n%s", buf.String())
	}
}
