package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/signalnine/tmc/internal/result"
	"github.com/signalnine/tmc/internal/workdir"
)

// ErrHelperOutput means the helper ran but did not print a usable result.
var ErrHelperOutput = errors.New("unreadable submission result")

// CommandSubmitter delegates the submission to an external helper program that
// prints the server's result as JSON on stdout.
type CommandSubmitter struct {
	Command []string
	Course  string
	Timeout time.Duration
	Retries uint64
	Backoff time.Duration
	Log     zerolog.Logger
}

func (s *CommandSubmitter) Submit(ctx context.Context, ex workdir.Exercise) (*result.SubmissionOutcome, error) {
	argv := s.expand(ex)
	if len(argv) == 0 {
		return nil, fmt.Errorf("submit command is empty")
	}
	base := s.Backoff
	if base <= 0 {
		base = time.Second
	}

	var out []byte
	err := retry.Do(ctx, retry.WithMaxRetries(s.Retries, retry.NewExponential(base)), func(ctx context.Context) error {
		var err error
		out, err = s.run(ctx, argv, ex.Dir)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.Log.Warn().Err(err).Str("exercise", ex.Name).Msg("submit helper failed, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("submitting %s: %w", ex.Name, err)
	}
	return DecodeOutcome(out)
}

func (s *CommandSubmitter) run(ctx context.Context, argv []string, dir string) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", argv[0], strings.TrimSpace(stderr.String()), err)
	}
	return out, nil
}

func (s *CommandSubmitter) expand(ex workdir.Exercise) []string {
	r := strings.NewReplacer("{exercise}", ex.Dir, "{course}", s.Course, "{name}", ex.Name)
	argv := make([]string, len(s.Command))
	for i, a := range s.Command {
		argv[i] = r.Replace(a)
	}
	return argv
}

// DecodeOutcome parses a helper's JSON output. A missing test result status is
// derived from the test cases.
func DecodeOutcome(data []byte) (*result.SubmissionOutcome, error) {
	var o result.SubmissionOutcome
	if err := json.Unmarshal(bytes.TrimSpace(data), &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHelperOutput, err)
	}
	if o.Status == "" {
		return nil, fmt.Errorf("%w: missing status", ErrHelperOutput)
	}
	if o.TestResultStatus == "" && o.Status != result.SubmissionProcessing && o.Status != result.SubmissionError {
		o.TestResultStatus = result.ComputeTestResultStatus(o.TestCases)
	}
	return &o, nil
}
