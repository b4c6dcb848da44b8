package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/signalnine/tmc/internal/config"
	"github.com/signalnine/tmc/internal/report"
	"github.com/signalnine/tmc/internal/result"
	"github.com/signalnine/tmc/internal/workdir"
)

var (
	flagFormat    string
	flagShow      string
	reportDisplay displayFlags
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [run-dir]",
		Short: "Summarize stored results or re-render one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(cfgFile)
			if err != nil {
				return err
			}
			if flagShow != "" {
				return showStored(cfg, flagShow)
			}

			root := ""
			wd, err := workdir.Find(".")
			switch {
			case err == nil:
				root = wd.Root
			case !errors.Is(err, workdir.ErrNotCourseDir):
				return err
			}
			runDir := filepath.Join(resultsDir(cfg, root), "latest")
			if len(args) > 0 {
				runDir = args[0]
			}
			resolved, err := filepath.EvalSymlinks(runDir)
			if err != nil {
				return fmt.Errorf("resolving run dir: %w", err)
			}
			return report.Summarize(resolved, flagFormat, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagShow, "show", "", "re-render a single stored result file")
	reportDisplay.register(cmd)
	return cmd
}

func showStored(cfg *config.Config, path string) error {
	stored, err := result.ReadStored(path)
	if err != nil {
		return err
	}
	printer := newStdoutPrinter(displayConfig(cfg.Display, reportDisplay))
	switch stored.Kind {
	case result.KindSubmission:
		return printer.PrintSubmission(stored.Submission)
	default:
		return printer.PrintRun(stored.Run)
	}
}
