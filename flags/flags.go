package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "SVREPORT"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	LogDir = &cli.StringFlag{
		Name:     "logdir",
		Required: true,
		EnvVars:  prefixEnvVars("LOGDIR"),
		Usage:    "Root of the runner log tree, one subdirectory per runner",
	}
	TagFile = &cli.StringFlag{
		Name:     "tags",
		Required: true,
		EnvVars:  prefixEnvVars("TAGS"),
		Usage:    "Path to the tab-separated tag reference table",
	}
	MetaTagFile = &cli.StringFlag{
		Name:    "metatags",
		EnvVars: prefixEnvVars("METATAGS"),
		Usage:   "Path to the tab-separated meta-tag expansion table",
	}
	SourceDir = &cli.StringFlag{
		Name:    "srcdir",
		EnvVars: prefixEnvVars("SRCDIR"),
		Usage:   "Directory relative test input paths are resolved against",
	}
	OutDir = &cli.StringFlag{
		Name:    "outdir",
		Value:   "out",
		EnvVars: prefixEnvVars("OUTDIR"),
		Usage:   "Directory the run directory is created under",
	}
	CSVFile = &cli.StringFlag{
		Name:    "csv",
		EnvVars: prefixEnvVars("CSV"),
		Usage:   "Path for the flat CSV export; empty disables it",
	}
	Workers = &cli.IntFlag{
		Name:    "workers",
		Value:   0,
		EnvVars: prefixEnvVars("WORKERS"),
		Usage:   "Number of ingestion workers; 0 uses the host's parallelism",
	}
	LogExt = &cli.StringFlag{
		Name:    "log-ext",
		Value:   ".log",
		EnvVars: prefixEnvVars("LOG_EXT"),
		Usage:   "Suffix log files are globbed by",
	}
	ReportConfig = &cli.StringFlag{
		Name:    "report-config",
		EnvVars: prefixEnvVars("REPORT_CONFIG"),
		Usage:   "Optional YAML file with report settings (eg. 'report.yaml')",
	}
	Title = &cli.StringFlag{
		Name:    "title",
		Value:   "SystemVerilog conformance report",
		EnvVars: prefixEnvVars("TITLE"),
		Usage:   "Title of the consolidated HTML report",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "The lowest log level that will be output (debug|info|warn|error)",
	}
)

var requiredFlags = []cli.Flag{
	LogDir,
	TagFile,
}

var optionalFlags = []cli.Flag{
	MetaTagFile,
	SourceDir,
	OutDir,
	CSVFile,
	Workers,
	LogExt,
	ReportConfig,
	Title,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

// CheckRequired verifies that all required flags were set.
func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
