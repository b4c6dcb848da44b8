package submit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/signalnine/tmc/internal/color"
	"github.com/signalnine/tmc/internal/report"
	"github.com/signalnine/tmc/internal/result"
	"github.com/signalnine/tmc/internal/workdir"
)

type Submitter interface {
	Submit(ctx context.Context, ex workdir.Exercise) (*result.SubmissionOutcome, error)
}

type Driver struct {
	Submitter Submitter
	Printer   *report.Printer
	Log       zerolog.Logger
	// SaveDir, when set, receives a copy of every outcome.
	SaveDir string
}

// Run submits the exercises one at a time and prints each outcome followed by a
// blank line. It returns the number of exercises whose submission failed.
func (d *Driver) Run(ctx context.Context, exercises []workdir.Exercise) (int, error) {
	failed := 0
	painter := d.Printer.Painter()
	for _, ex := range exercises {
		if err := d.Printer.Println(painter.Paint(color.Warning, "Submitting: "+ex.Name)); err != nil {
			return failed, err
		}
		outcome, err := d.Submitter.Submit(ctx, ex)
		if err == nil && outcome == nil {
			err = fmt.Errorf("no result returned")
		}
		if err != nil {
			failed++
			d.Log.Error().Err(err).Str("exercise", ex.Name).Msg("submission failed")
			if err := d.Printer.Println("Submission failed."); err != nil {
				return failed, err
			}
		} else {
			if err := d.Printer.PrintSubmission(outcome); err != nil {
				return failed, err
			}
			d.save(ex.Name, outcome)
		}
		if err := d.Printer.Println(""); err != nil {
			return failed, err
		}
		if ctx.Err() != nil {
			return failed, ctx.Err()
		}
	}
	return failed, nil
}

func (d *Driver) save(exercise string, o *result.SubmissionOutcome) {
	if d.SaveDir == "" {
		return
	}
	if err := result.WriteSubmission(d.SaveDir, exercise, o); err != nil {
		d.Log.Warn().Err(err).Str("exercise", exercise).Msg("could not save submission result")
	}
}
