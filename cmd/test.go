package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/signalnine/tmc/internal/docker"
	"github.com/signalnine/tmc/internal/runner"
)

var (
	testDisplay  displayFlags
	testParallel int
	testSave     bool
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [exercise...]",
		Short: "Run exercise tests locally in a container",
		RunE:  runTest,
	}
	testDisplay.register(cmd)
	cmd.Flags().IntVar(&testParallel, "parallel", 0, "max concurrent containers (default from config)")
	cmd.Flags().BoolVar(&testSave, "save", false, "store results under the results directory")
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	cc, err := loadCourse(args)
	if err != nil {
		return err
	}
	saveDir, err := cc.saveDir(testSave)
	if err != nil {
		return err
	}
	env, err := runner.LoadEnv(cc.cfg.Tests.EnvFile)
	if err != nil {
		return err
	}
	parallel := cc.cfg.Tests.Parallel
	if testParallel > 0 {
		parallel = testParallel
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tester := &runner.Tester{Run: docker.RunContainer, Log: logger, SaveDir: saveDir}
	outcomes, saveErr := tester.RunAll(ctx, cc.exercises, runner.TestOpts{
		Image:       cc.cfg.Tests.Image,
		Command:     cc.cfg.Tests.Command,
		ResultsFile: cc.cfg.Tests.ResultsFile,
		Timeout:     cc.cfg.Tests.Timeout(),
		Env:         env,
		CPULimit:    cc.cfg.Tests.CPULimit,
		MemoryLimit: cc.cfg.Tests.MemoryMB * 1024 * 1024,
	}, parallel, cmd.ErrOrStderr())
	if saveErr != nil {
		logger.Warn().Err(saveErr).Msg("some results were not saved")
	}

	printer := newStdoutPrinter(displayConfig(cc.cfg.Display, testDisplay))
	for i, o := range outcomes {
		if err := printer.Println(cc.exercises[i].Name); err != nil {
			return err
		}
		if err := printer.PrintRun(o); err != nil {
			return err
		}
		if err := printer.Println(""); err != nil {
			return err
		}
	}
	return ctx.Err()
}
