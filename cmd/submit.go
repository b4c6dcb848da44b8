package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/signalnine/tmc/internal/config"
	"github.com/signalnine/tmc/internal/result"
	"github.com/signalnine/tmc/internal/submit"
	"github.com/signalnine/tmc/internal/workdir"
)

var (
	submitDisplay displayFlags
	submitSave    bool
)

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [exercise...]",
		Short: "Submit exercises to the server and show the results",
		RunE:  runSubmit,
	}
	submitDisplay.register(cmd)
	cmd.Flags().BoolVar(&submitDisplay.noProgress, "no-progress", false, "hide the progress bar")
	cmd.Flags().BoolVar(&submitSave, "save", false, "store results under the results directory")
	return cmd
}

// courseContext holds what every exercise command needs before it starts.
type courseContext struct {
	cfg       *config.Config
	wd        *workdir.WorkDir
	exercises []workdir.Exercise
}

func loadCourse(args []string) (*courseContext, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	wd, err := workdir.Find(".")
	if err != nil {
		return nil, err
	}
	exercises, err := wd.Resolve(args)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("course", wd.Course.Name).Int("exercises", len(exercises)).Msg("resolved exercises")
	return &courseContext{cfg: cfg, wd: wd, exercises: exercises}, nil
}

// saveDir creates a run directory when save is set.
func (c *courseContext) saveDir(save bool) (string, error) {
	if !save {
		return "", nil
	}
	dir, err := result.CreateRunDir(resultsDir(c.cfg, c.wd.Root))
	if err != nil {
		return "", err
	}
	logger.Info().Str("dir", dir).Msg("saving results")
	return dir, nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cc, err := loadCourse(args)
	if err != nil {
		return err
	}
	saveDir, err := cc.saveDir(submitSave)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := &submit.Driver{
		Submitter: &submit.CommandSubmitter{
			Command: cc.cfg.Submit.Command,
			Course:  cc.wd.Course.Name,
			Timeout: cc.cfg.Submit.Timeout(),
			Retries: cc.cfg.Submit.Retries,
			Log:     logger,
		},
		Printer: newStdoutPrinter(displayConfig(cc.cfg.Display, submitDisplay)),
		Log:     logger,
		SaveDir: saveDir,
	}
	failed, err := driver.Run(ctx, cc.exercises)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(cc.exercises))
	}
	return nil
}
