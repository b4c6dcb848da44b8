package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/signalnine/tmc/internal/color"
	"github.com/signalnine/tmc/internal/config"
	"github.com/signalnine/tmc/internal/report"
)

var (
	cfgFile  string
	logLevel string
	noColor  bool

	logger = zerolog.Nop()
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tmc",
		Short:        "Submit course exercises and report their test results",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "tmc.yaml", "config file path")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.AddCommand(newSubmitCmd())
	root.AddCommand(newTestCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newListCmd())
	return root
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// displayFlags are the rendering switches shared by submit, test and report.
type displayFlags struct {
	all        bool
	details    bool
	noProgress bool
}

func (f *displayFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "show passed tests too")
	cmd.Flags().BoolVarP(&f.details, "details", "d", false, "show detailed messages and stack traces")
}

// displayConfig merges the config file's display section with command line flags.
// Flags can only switch options on, except --no-progress.
func displayConfig(d config.Display, f displayFlags) report.DisplayConfig {
	filled, empty := d.BarColors()
	return report.DisplayConfig{
		ShowAllPassed:   d.ShowAll || f.all,
		ShowDetails:     d.ShowDetails || f.details,
		ShowProgressBar: d.ShowProgressBar() && !f.noProgress,
		BarFilled:       filled,
		BarEmpty:        empty,
	}
}

// newStdoutPrinter renders to stdout, colored when stdout is a terminal.
func newStdoutPrinter(cfg report.DisplayConfig) *report.Printer {
	painter := color.NewPainter(!noColor && color.Enabled(os.Stdout))
	return report.NewPrinter(colorable.NewColorableStdout(), cfg, painter)
}

// resultsDir resolves a relative results directory against the course root.
func resultsDir(cfg *config.Config, root string) string {
	if filepath.IsAbs(cfg.Results.Dir) || root == "" {
		return cfg.Results.Dir
	}
	return filepath.Join(root, cfg.Results.Dir)
}
