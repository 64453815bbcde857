package svtests

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/sw23/sv-tests/flags"
	"github.com/sw23/sv-tests/parser"
)

// ReportSettings are the optional YAML-file overrides for presentation and
// classification details that do not warrant their own flag.
type ReportSettings struct {
	Title string `yaml:"title"`
	// SimulationPassRegexp replaces the default simulation output check: a
	// simulation-mode test passes only if its log body matches.
	SimulationPassRegexp string `yaml:"simulation_pass_regexp"`
	DisableHTML          bool   `yaml:"disable_html"`
	DisableFragments     bool   `yaml:"disable_fragments"`
}

// Config holds the application configuration
type Config struct {
	LogDir      string // Root of the runner log tree
	SourceDir   string // Root relative test input paths are resolved against
	OutDir      string // Directory the run directory is created under
	TagFile     string // Tab-separated tag reference table
	MetaTagFile string // Tab-separated meta-tag expansion table, optional
	CSVFile     string // Flat CSV export path, empty disables it
	LogExt      string // Log file suffix
	Workers     int    // Ingestion worker count, 0 = host parallelism

	Title     string
	Sim       parser.SimulationCheck
	HTML      bool
	Fragments bool

	Log log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	logDir, err := filepath.Abs(ctx.String(flags.LogDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for log directory: %w", err)
	}
	outDir, err := filepath.Abs(ctx.String(flags.OutDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for output directory: %w", err)
	}

	sourceDir := ctx.String(flags.SourceDir.Name)
	if sourceDir != "" {
		if sourceDir, err = filepath.Abs(sourceDir); err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for source directory: %w", err)
		}
	}

	cfg := &Config{
		LogDir:      logDir,
		SourceDir:   sourceDir,
		OutDir:      outDir,
		TagFile:     ctx.String(flags.TagFile.Name),
		MetaTagFile: ctx.String(flags.MetaTagFile.Name),
		CSVFile:     ctx.String(flags.CSVFile.Name),
		LogExt:      ctx.String(flags.LogExt.Name),
		Workers:     ctx.Int(flags.Workers.Name),
		Title:       ctx.String(flags.Title.Name),
		Sim:         parser.DefaultSimulationCheck,
		HTML:        true,
		Fragments:   true,
		Log:         logger,
	}

	if path := ctx.String(flags.ReportConfig.Name); path != "" {
		if err := cfg.applyReportSettings(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyReportSettings merges the YAML overrides into the config.
func (c *Config) applyReportSettings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report config %s: %w", path, err)
	}

	var settings ReportSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to parse report config %s: %w", path, err)
	}

	if settings.Title != "" {
		c.Title = settings.Title
	}
	if settings.SimulationPassRegexp != "" {
		re, err := regexp.Compile(settings.SimulationPassRegexp)
		if err != nil {
			return fmt.Errorf("invalid simulation_pass_regexp in %s: %w", path, err)
		}
		c.Sim = func(body string) bool { return re.MatchString(body) }
	}
	c.HTML = !settings.DisableHTML
	c.Fragments = !settings.DisableFragments
	return nil
}
