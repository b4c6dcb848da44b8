package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/tmc/internal/result"
)

type ExerciseSummary struct {
	Exercise string      `json:"exercise"`
	Kind     result.Kind `json:"kind"`
	Passed   int         `json:"passed"`
	Total    int         `json:"total"`
	Status   string      `json:"status"`
	Points   []string    `json:"points,omitempty"`
}

// Summarize reads the outcomes saved under runDir and writes one row per exercise.
func Summarize(runDir, format string, w io.Writer) error {
	stored, err := collectOutcomes(runDir)
	if err != nil {
		return err
	}

	summaries := aggregate(stored)

	switch format {
	case "markdown":
		return writeMarkdown(summaries, w)
	case "json":
		return writeJSON(summaries, w)
	default:
		return writeTable(summaries, w)
	}
}

func collectOutcomes(runDir string) ([]*result.Stored, error) {
	var stored []*result.Stored
	err := filepath.Walk(runDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		s, err := result.ReadStored(path)
		if err != nil {
			return nil
		}
		stored = append(stored, s)
		return nil
	})
	return stored, err
}

func aggregate(stored []*result.Stored) []ExerciseSummary {
	var summaries []ExerciseSummary
	for _, s := range stored {
		sum := ExerciseSummary{Exercise: s.Exercise, Kind: s.Kind}
		switch s.Kind {
		case result.KindSubmission:
			sum.Passed = result.PassedCount(s.Submission.TestCases)
			sum.Total = len(s.Submission.TestCases)
			sum.Status = string(s.Submission.Status)
			if s.Submission.TestResultStatus != "" {
				sum.Status += "/" + string(s.Submission.TestResultStatus)
			}
			if s.Submission.TestResultStatus == result.NoneFailed {
				sum.Points = s.Submission.Points
			}
		case result.KindRun:
			sum.Passed = result.PassedCount(s.Run.TestResults)
			sum.Total = len(s.Run.TestResults)
			sum.Status = string(s.Run.Status)
		}
		summaries = append(summaries, sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Exercise != summaries[j].Exercise {
			return summaries[i].Exercise < summaries[j].Exercise
		}
		return summaries[i].Kind < summaries[j].Kind
	})
	return summaries
}

func writeTable(summaries []ExerciseSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EXERCISE\tKIND\tPASSED\tSTATUS\tPOINTS")
	fmt.Fprintln(tw, strings.Repeat("-", 72))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n",
			s.Exercise, s.Kind, s.Passed, s.Total, s.Status, strings.Join(s.Points, ","))
	}
	return tw.Flush()
}

func writeMarkdown(summaries []ExerciseSummary, w io.Writer) error {
	fmt.Fprintln(w, "| Exercise | Kind | Passed | Status | Points |")
	fmt.Fprintln(w, "|---|---|---|---|---|")
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %s | %d/%d | %s | %s |\n",
			s.Exercise, s.Kind, s.Passed, s.Total, s.Status, strings.Join(s.Points, ", "))
	}
	return nil
}

func writeJSON(summaries []ExerciseSummary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
