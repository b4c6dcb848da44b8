// Package classify turns submission and run outcomes into display-ready values:
// pass counts, the tests worth listing, a status block and one narrative message.
// It performs no I/O and never fails on incomplete data.
package classify

import (
	"fmt"
	"strings"

	"github.com/signalnine/tmc/internal/color"
	"github.com/signalnine/tmc/internal/result"
)

type Options struct {
	ShowAllPassed bool
}

type Counts struct {
	Passed int
	Total  int
}

func Count(tests []result.TestOutcome) Counts {
	return Counts{Passed: result.PassedCount(tests), Total: len(tests)}
}

// StatusBlock is the server-status specific output of a submission. It is one of
// NoBlock, ErrorBlock, ValgrindBlock or ProcessingBlock.
type StatusBlock interface {
	// Terminal reports whether nothing else is rendered after the block.
	Terminal() bool
	statusBlock()
}

type NoBlock struct{}

type ErrorBlock struct{ Text string }

type ValgrindBlock struct{ Log string }

type ProcessingBlock struct{}

func (NoBlock) Terminal() bool         { return false }
func (ErrorBlock) Terminal() bool      { return true }
func (ValgrindBlock) Terminal() bool   { return true }
func (ProcessingBlock) Terminal() bool { return false }

func (NoBlock) statusBlock()         {}
func (ErrorBlock) statusBlock()      {}
func (ValgrindBlock) statusBlock()   {}
func (ProcessingBlock) statusBlock() {}

// Narrative is the closing summary of an outcome: Headline decorated with Tag,
// followed by an undecorated Tail.
type Narrative struct {
	Tag      color.Tag
	Headline string
	Tail     string
}

type Submission struct {
	Counts    Counts
	Tests     []result.TestOutcome
	Block     StatusBlock
	Narrative *Narrative
}

type Run struct {
	Counts    Counts
	Tests     []result.TestOutcome
	Narrative *Narrative
}

func ClassifySubmission(o *result.SubmissionOutcome, opts Options) Submission {
	c := Submission{
		Counts: Count(o.TestCases),
		Tests:  visibleTests(o.TestCases, opts),
		Block:  statusBlock(o),
	}
	if c.Block.Terminal() {
		return c
	}
	// The test result status means nothing while the server is still grading.
	if _, processing := c.Block.(ProcessingBlock); !processing {
		c.Narrative = submissionNarrative(o)
	}
	return c
}

func ClassifyRun(o *result.RunOutcome, opts Options) Run {
	return Run{
		Counts:    Count(o.TestResults),
		Tests:     visibleTests(o.TestResults, opts),
		Narrative: runNarrative(o),
	}
}

// visibleTests keeps failures always and passes only on request, in input order.
func visibleTests(tests []result.TestOutcome, opts Options) []result.TestOutcome {
	var out []result.TestOutcome
	for _, t := range tests {
		if !t.Successful || opts.ShowAllPassed {
			out = append(out, t)
		}
	}
	return out
}

func statusBlock(o *result.SubmissionOutcome) StatusBlock {
	switch o.Status {
	case result.SubmissionError:
		return ErrorBlock{Text: o.ErrorText}
	case result.SubmissionFail:
		if o.ValgrindLog != "" {
			return ValgrindBlock{Log: o.ValgrindLog}
		}
		return NoBlock{}
	case result.SubmissionProcessing:
		return ProcessingBlock{}
	default:
		return NoBlock{}
	}
}

const reviewPrompt = " Please review your answer"

func submissionNarrative(o *result.SubmissionOutcome) *Narrative {
	switch o.TestResultStatus {
	case result.NoneFailed:
		return &Narrative{
			Tag:      color.Success,
			Headline: "All tests passed on server!",
			Tail: "\nPoints permanently awarded: " + formatPoints(o.Points) +
				"\nModel solution: " + o.SolutionURL,
		}
	case result.AllFailed:
		return &Narrative{Tag: color.Failure, Headline: "All tests failed on server.", Tail: reviewPrompt}
	case result.SomeFailed:
		return &Narrative{Tag: color.Failure, Headline: "Some tests failed on server.", Tail: reviewPrompt}
	default:
		return nil
	}
}

func runNarrative(o *result.RunOutcome) *Narrative {
	switch o.Status {
	case result.RunPassed:
		return &Narrative{
			Tag:      color.Success,
			Headline: "All tests passed!",
			Tail:     " Submit to server with 'tmc submit'",
		}
	case result.RunTestsFailed:
		return &Narrative{Headline: "Please review your answer before submitting"}
	case result.RunCompileFailed:
		return &Narrative{Tag: color.Compile, Headline: "Failed to compile project"}
	case result.RunTestrunInterrupted:
		return &Narrative{Headline: "Testrun interrupted"}
	case result.RunGenericError:
		return &Narrative{Headline: string(o.Logs[result.LogGenericError])}
	default:
		return nil
	}
}

func formatPoints(points []string) string {
	return fmt.Sprintf("[%s]", strings.Join(points, ", "))
}
