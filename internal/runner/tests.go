package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/signalnine/tmc/internal/docker"
	"github.com/signalnine/tmc/internal/result"
	"github.com/signalnine/tmc/internal/workdir"
)

// ContainerFunc runs a container to completion. docker.RunContainer is the
// production implementation.
type ContainerFunc func(ctx context.Context, name string, opts *docker.RunOpts) (*docker.RunResult, error)

type TestOpts struct {
	Image       string
	Command     string
	ResultsFile string
	Timeout     time.Duration
	Env         map[string]string
	CPULimit    float64
	MemoryLimit int64
}

type Tester struct {
	Run ContainerFunc
	Log zerolog.Logger
	// SaveDir, when set, receives a copy of every outcome.
	SaveDir string
}

// LoadEnv reads KEY=VALUE pairs for test containers. An empty path yields no variables.
func LoadEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return env, nil
}

// ForExercise applies the exercise's image and command overrides.
func (o TestOpts) ForExercise(ex workdir.Exercise) TestOpts {
	if ex.Info.Image != "" {
		o.Image = ex.Info.Image
	}
	if ex.Info.Command != "" {
		o.Command = ex.Info.Command
	}
	env := make(map[string]string, len(o.Env)+1)
	for k, v := range o.Env {
		env[k] = v
	}
	env["EXERCISE"] = ex.Name
	o.Env = env
	return o
}

// RunTests compiles and tests one exercise in a container. Every failure,
// including infrastructure errors, is reported through the returned outcome.
func (t *Tester) RunTests(ctx context.Context, ex workdir.Exercise, opts TestOpts) *result.RunOutcome {
	opts = opts.ForExercise(ex)
	log := t.Log.With().Str("exercise", ex.Name).Logger()

	if opts.Image == "" || opts.Command == "" {
		return genericError(fmt.Errorf("no test image or command configured for %s", ex.Name))
	}

	resultsPath := filepath.Join(ex.Dir, opts.ResultsFile)
	if err := os.Remove(resultsPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return genericError(fmt.Errorf("removing stale results: %w", err))
	}

	log.Debug().Str("image", opts.Image).Msg("running tests")
	res, err := t.Run(ctx, docker.ContainerName(ex.Name), &docker.RunOpts{
		Image:       opts.Image,
		Command:     []string{"sh", "-c", opts.Command},
		WorkDir:     ex.Dir,
		Env:         opts.Env,
		Timeout:     opts.Timeout,
		CPULimit:    opts.CPULimit,
		MemoryLimit: opts.MemoryLimit,
		UserID:      fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid()),
	})
	if err != nil {
		log.Error().Err(err).Msg("test container failed")
		return genericError(fmt.Errorf("running tests: %w", err))
	}
	log.Debug().Int("exit_code", res.ExitCode).Dur("duration", res.Duration).Msg("tests finished")

	data, readErr := os.ReadFile(resultsPath)
	return Outcome(res, resultsPath, data, readErr)
}

// Outcome maps a finished container and its results file onto a run outcome.
func Outcome(res *docker.RunResult, resultsPath string, data []byte, readErr error) *result.RunOutcome {
	logs := map[string][]byte{}
	if len(res.Output) > 0 {
		logs[result.LogStdout] = res.Output
	}
	if res.TimedOut {
		return &result.RunOutcome{Status: result.RunTestrunInterrupted, Logs: logs}
	}
	if readErr != nil {
		if res.ExitCode != 0 {
			logs[result.LogCompilerOutput] = res.Output
			return &result.RunOutcome{Status: result.RunCompileFailed, Logs: logs}
		}
		logs[result.LogGenericError] = []byte(fmt.Sprintf("tests finished without writing %s", filepath.Base(resultsPath)))
		return &result.RunOutcome{Status: result.RunGenericError, Logs: logs}
	}

	tests, err := ParseResults(resultsPath, data)
	if err != nil {
		logs[result.LogGenericError] = []byte(err.Error())
		return &result.RunOutcome{Status: result.RunGenericError, Logs: logs}
	}
	status := result.RunPassed
	if result.PassedCount(tests) != len(tests) {
		status = result.RunTestsFailed
	}
	return &result.RunOutcome{TestResults: tests, Status: status, Logs: logs}
}

func genericError(err error) *result.RunOutcome {
	return &result.RunOutcome{
		Status: result.RunGenericError,
		Logs:   map[string][]byte{result.LogGenericError: []byte(err.Error())},
	}
}

// RunAll tests the exercises with at most parallel containers at a time and
// returns the outcomes in the order of exercises. progress, when non-nil,
// receives a bar that advances as exercises finish. The error reports outcomes
// that could not be saved; every outcome is returned regardless.
func (t *Tester) RunAll(ctx context.Context, exercises []workdir.Exercise, opts TestOpts, parallel int, progress io.Writer) ([]*result.RunOutcome, error) {
	outcomes := make([]*result.RunOutcome, len(exercises))

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(exercises),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("Running tests"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	jobs := make([]Job, len(exercises))
	for i, ex := range exercises {
		i, ex := i, ex
		jobs[i] = func() error {
			outcomes[i] = t.RunTests(ctx, ex, opts)
			if bar != nil {
				bar.Add(1)
			}
			if t.SaveDir == "" {
				return nil
			}
			if err := result.WriteRun(t.SaveDir, ex.Name, outcomes[i]); err != nil {
				return fmt.Errorf("saving %s: %w", ex.Name, err)
			}
			return nil
		}
	}
	err := RunPool(parallel, jobs)
	if bar != nil {
		bar.Finish()
	}
	return outcomes, err
}
