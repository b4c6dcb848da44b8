package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalnine/tmc/internal/color"
)

type Config struct {
	Display Display `yaml:"display"`
	Submit  Submit  `yaml:"submit"`
	Tests   Tests   `yaml:"tests"`
	Results Results `yaml:"results"`
}

type Display struct {
	ShowAll     bool   `yaml:"show_all"`
	ShowDetails bool   `yaml:"show_details"`
	ProgressBar *bool  `yaml:"progress_bar"`
	Colors      Colors `yaml:"colors"`
}

// Colors are the progress bar segment colors.
type Colors struct {
	Filled string `yaml:"filled"`
	Empty  string `yaml:"empty"`
}

// Submit configures the helper command that performs a submission and prints
// the server's result as JSON. "{exercise}" and "{course}" in Command are
// replaced with the exercise directory and the course name.
type Submit struct {
	Command        []string `yaml:"command"`
	TimeoutMinutes int      `yaml:"timeout_minutes"`
	Retries        uint64   `yaml:"retries"`
}

type Tests struct {
	Image          string  `yaml:"image"`
	Command        string  `yaml:"command"`
	ResultsFile    string  `yaml:"results_file"`
	TimeoutMinutes int     `yaml:"timeout_minutes"`
	Parallel       int     `yaml:"parallel"`
	EnvFile        string  `yaml:"env_file"`
	CPULimit       float64 `yaml:"cpu_limit"`
	MemoryMB       int64   `yaml:"memory_mb"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	if err := validate(cfg); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (d Display) ShowProgressBar() bool {
	return d.ProgressBar == nil || *d.ProgressBar
}

// BarColors returns the parsed progress bar colors. Load has already validated them.
func (d Display) BarColors() (filled, empty color.Color) {
	filled, _ = color.Parse(d.Colors.Filled)
	empty, _ = color.Parse(d.Colors.Empty)
	return filled, empty
}

func (s Submit) Timeout() time.Duration {
	return time.Duration(s.TimeoutMinutes) * time.Minute
}

func (t Tests) Timeout() time.Duration {
	return time.Duration(t.TimeoutMinutes) * time.Minute
}

func validate(cfg *Config) error {
	if cfg.Display.Colors.Filled == "" {
		cfg.Display.Colors.Filled = string(color.Green)
	}
	if cfg.Display.Colors.Empty == "" {
		cfg.Display.Colors.Empty = string(color.Red)
	}
	if _, err := color.Parse(cfg.Display.Colors.Filled); err != nil {
		return fmt.Errorf("display.colors.filled: %w", err)
	}
	if _, err := color.Parse(cfg.Display.Colors.Empty); err != nil {
		return fmt.Errorf("display.colors.empty: %w", err)
	}

	if len(cfg.Submit.Command) == 0 {
		cfg.Submit.Command = []string{"tmc-langs-cli", "submit", "--exercise-path", "{exercise}"}
	}
	if cfg.Submit.TimeoutMinutes < 0 {
		return fmt.Errorf("submit.timeout_minutes must not be negative")
	}
	if cfg.Submit.TimeoutMinutes == 0 {
		cfg.Submit.TimeoutMinutes = 5
	}
	if cfg.Submit.Retries == 0 {
		cfg.Submit.Retries = 2
	}

	if cfg.Tests.ResultsFile == "" {
		cfg.Tests.ResultsFile = ".tmc_test_results.json"
	}
	if cfg.Tests.TimeoutMinutes < 0 {
		return fmt.Errorf("tests.timeout_minutes must not be negative")
	}
	if cfg.Tests.TimeoutMinutes == 0 {
		cfg.Tests.TimeoutMinutes = 10
	}
	if cfg.Tests.Parallel < 1 {
		cfg.Tests.Parallel = 1
	}

	if cfg.Results.Dir == "" {
		cfg.Results.Dir = ".tmc-results"
	}
	return nil
}
