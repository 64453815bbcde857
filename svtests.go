// Package svtests wires the report pipeline together: load the tag tables,
// ingest every runner's logs in parallel, merge the per-runner aggregates and
// render the consolidated report artifacts into a fresh run directory.
package svtests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/sw23/sv-tests/aggregate"
	"github.com/sw23/sv-tests/ingest"
	"github.com/sw23/sv-tests/logging"
	"github.com/sw23/sv-tests/metrics"
	"github.com/sw23/sv-tests/reporting"
	"github.com/sw23/sv-tests/tagdb"
	"github.com/sw23/sv-tests/types"
)

// Reporter runs one end-to-end report generation.
type Reporter struct {
	cfg       *Config
	version   string
	runID     string
	log       log.Logger
	formatter ResultFormatter
}

// New creates a Reporter with a fresh run ID.
func New(cfg *Config, version string) (*Reporter, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Reporter{
		cfg:       cfg,
		version:   version,
		runID:     uuid.New().String(),
		log:       cfg.Log.New("component", "reporter"),
		formatter: NewConsoleResultFormatter(cfg.Log),
	}, nil
}

// RunID returns the identifier of this run, also used in the run directory name.
func (r *Reporter) RunID() string {
	return r.runID
}

// Run executes the whole pipeline once. Configuration and ingestion problems
// come back as RuntimeError; a failure to render or export the final report
// comes back as ReportError.
func (r *Reporter) Run(ctx context.Context) error {
	start := time.Now()
	r.log.Info("Starting report run",
		"run_id", r.runID,
		"version", r.version,
		"logdir", r.cfg.LogDir)

	db, err := tagdb.New(tagdb.Config{
		Log:         r.cfg.Log,
		TagFile:     r.cfg.TagFile,
		MetaTagFile: r.cfg.MetaTagFile,
	})
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to load tag database: %w", err))
	}

	pages, err := logging.NewFileWriter(r.cfg.OutDir, r.runID, r.cfg.SourceDir, r.cfg.Log)
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to create run directory: %w", err))
	}

	ing := ingest.New(ingest.Config{
		Log:        r.cfg.Log,
		LogDir:     r.cfg.LogDir,
		SourceRoot: r.cfg.SourceDir,
		LogExt:     r.cfg.LogExt,
		Workers:    r.cfg.Workers,
		Sim:        r.cfg.Sim,
		Tags:       db,
		Pages:      pages,
	})

	runners, err := ing.DiscoverRunners()
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to discover runners: %w", err))
	}
	if len(runners) == 0 {
		return NewRuntimeError(fmt.Errorf("no runner directories under %s", r.cfg.LogDir))
	}

	outputs, err := ing.Run(ctx, runners)
	if err != nil {
		return NewRuntimeError(err)
	}

	results := aggregate.Merge(outputs, db, r.cfg.Log)
	r.publishMetrics(results)

	if err := r.export(ctx, results, pages); err != nil {
		return err
	}

	if err := r.formatter.FormatResults(results); err != nil {
		r.log.Warn("Failed to print console summary", "error", err)
	}

	metrics.RecordRunDuration(time.Since(start))
	r.log.Info("Report run complete",
		"duration", time.Since(start),
		"runners", len(runners),
		"groups", len(results.Groups),
		"dir", pages.RunDir())
	return nil
}

// export renders every enabled artifact into the run directory. Any failure
// here is fatal for the run: a partially written report is worse than none.
func (r *Reporter) export(ctx context.Context, results *types.ReportResults, pages *logging.FileWriter) error {
	if err := pages.WriteSourcePages(ctx, results.InputFiles, r.cfg.Workers); err != nil {
		return NewReportError(fmt.Errorf("failed to render source pages: %w", err))
	}

	if r.cfg.Fragments {
		if err := reporting.WriteFragments(pages.RunDir(), results); err != nil {
			return NewReportError(fmt.Errorf("failed to export config fragments: %w", err))
		}
	}

	if r.cfg.HTML {
		sink, err := reporting.NewHTMLSink(pages.RunDir())
		if err != nil {
			return NewReportError(fmt.Errorf("failed to create HTML sink: %w", err))
		}
		if err := sink.Render(results, r.cfg.Title, r.runID, time.Now()); err != nil {
			return NewReportError(fmt.Errorf("failed to render HTML report: %w", err))
		}
	}

	if r.cfg.CSVFile != "" {
		csv := &reporting.CSVFile{Path: r.cfg.CSVFile}
		if err := csv.WriteRows(reporting.CSVHeader, reporting.BuildRows(results)); err != nil {
			return NewReportError(fmt.Errorf("failed to export CSV: %w", err))
		}
	}
	return nil
}

func (r *Reporter) publishMetrics(results *types.ReportResults) {
	for groupID, group := range results.Groups {
		for tool, summary := range group.Summaries {
			metrics.RecordGroupSummary(groupID, tool, summary)
		}
	}
}
