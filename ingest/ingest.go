// Package ingest walks the per-runner log trees and reduces each runner's
// logs into per-group partial aggregates. One runner is processed end-to-end
// by exactly one worker; workers share nothing mutable, which is what makes
// the later merge safe to run single-threaded.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/sw23/sv-tests/aggregate"
	"github.com/sw23/sv-tests/metrics"
	"github.com/sw23/sv-tests/parser"
	"github.com/sw23/sv-tests/tagdb"
	"github.com/sw23/sv-tests/types"
)

// DefaultLogExt is the suffix log files are globbed by.
const DefaultLogExt = ".log"

// PageWriter renders the per-test log detail page for a result and returns
// its relative path. Implementations write only under the runner's exclusive
// output subtree, so concurrent workers cannot collide.
type PageWriter interface {
	WriteTestPage(runner string, result *types.TestResult, body string) (string, error)
}

// Config contains ingestor configuration.
type Config struct {
	Log log.Logger
	// LogDir is the root of the log tree: one subdirectory per runner.
	LogDir string
	// SourceRoot resolves relative test input paths for sizing.
	SourceRoot string
	// LogExt overrides DefaultLogExt when set.
	LogExt string
	// Workers sizes the pool; 0 means the host's parallelism.
	Workers int
	// Sim is the simulation-correctness content check.
	Sim parser.SimulationCheck
	// Tags performs meta-tag expansion and is read-only shared context.
	Tags *tagdb.DB
	// Pages renders per-test detail pages; nil disables rendering.
	Pages PageWriter
}

// Ingestor coordinates parallel per-runner ingestion.
type Ingestor struct {
	cfg Config
	log log.Logger
}

// New creates an ingestor.
func New(cfg Config) *Ingestor {
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	if cfg.LogExt == "" {
		cfg.LogExt = DefaultLogExt
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Ingestor{
		cfg: cfg,
		log: cfg.Log.New("component", "ingest"),
	}
}

// DiscoverRunners lists the runner subdirectories of the log tree, sorted by
// name so the submission order (and therefore the merge order) is stable.
func (in *Ingestor) DiscoverRunners() ([]string, error) {
	entries, err := os.ReadDir(in.cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("reading log directory %s: %w", in.cfg.LogDir, err)
	}

	var runners []string
	for _, entry := range entries {
		if entry.IsDir() {
			runners = append(runners, entry.Name())
		}
	}
	sort.Strings(runners)
	return runners, nil
}

// Run ingests all runners in parallel and returns one output per runner, in
// the order the runner names were supplied. The pool collects results in
// completion order, so each task writes into its own index of a pre-sized
// slice instead; the zip between names and outputs stays stable even though
// workers finish in arbitrary order.
func (in *Ingestor) Run(ctx context.Context, runners []string) ([]*aggregate.RunnerOutput, error) {
	in.log.Info("Starting runner ingestion", "runners", len(runners), "workers", in.cfg.Workers)

	outputs := make([]*aggregate.RunnerOutput, len(runners))
	p := pool.New().
		WithErrors().
		WithMaxGoroutines(in.cfg.Workers).
		WithContext(ctx)

	for i, runner := range runners {
		i, runner := i, runner
		p.Go(func(ctx context.Context) error {
			wctx := in.newWorkerContext(runner)
			output, err := wctx.ingestRunner(ctx)
			if err != nil {
				return err
			}
			outputs[i] = output
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("runner ingestion failed: %w", err)
	}
	return outputs, nil
}

// workerContext is the per-worker copy of read-only shared context. It is
// built once when a worker picks up a runner, never per log file, and is the
// only state the worker touches besides its private output.
type workerContext struct {
	runner    string
	runnerDir string
	logExt    string
	parser    *parser.Parser
	pages     PageWriter
	log       log.Logger
}

func (in *Ingestor) newWorkerContext(runner string) *workerContext {
	logger := in.log.New("runner", runner)
	return &workerContext{
		runner:    runner,
		runnerDir: filepath.Join(in.cfg.LogDir, runner),
		logExt:    in.cfg.LogExt,
		parser: parser.New(parser.Config{
			Log:        logger,
			SourceRoot: in.cfg.SourceRoot,
			Sim:        in.cfg.Sim,
			Tags:       in.cfg.Tags,
		}),
		pages: in.cfg.Pages,
		log:   logger,
	}
}

// ingestRunner processes one runner's whole log tree: parse, classify,
// render detail pages, fold into per-group aggregates.
func (w *workerContext) ingestRunner(ctx context.Context) (*aggregate.RunnerOutput, error) {
	paths, err := w.globLogs()
	if err != nil {
		// An unreadable runner tree yields an empty output, not a failed
		// run; the runner simply has no usable logs.
		w.log.Warn("Failed to enumerate runner logs", "error", err)
		return &aggregate.RunnerOutput{Tool: w.toolInfo(), Groups: map[string]*types.PartialGroupData{}}, nil
	}

	var results []*types.TestResult
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, body, err := w.parser.ParseFile(path)
		if err != nil {
			w.reportParseError(path, err)
			continue
		}

		if w.pages != nil {
			page, err := w.pages.WriteTestPage(w.runner, result, body)
			if err != nil {
				w.log.Warn("Failed to write test detail page", "file", path, "error", err)
			} else {
				result.LogPage = page
			}
		}
		results = append(results, result)
	}

	w.log.Info("Runner ingested", "logs", len(paths), "parsed", len(results))
	metrics.RecordRunnerIngested(w.runner, len(paths), len(results))

	return &aggregate.RunnerOutput{
		Tool:   w.toolInfo(),
		Groups: aggregate.Fold(results),
	}, nil
}

// globLogs recursively collects log files under the runner directory. The
// enumeration order is irrelevant; ordering is imposed later by the sort in
// the aggregation step.
func (w *workerContext) globLogs() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.runnerDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), w.logExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (w *workerContext) reportParseError(path string, err error) {
	var malformed *parser.MalformedLogError
	switch {
	case errors.Is(err, parser.ErrEmptyLog):
		// Zero-byte logs are tests that did not run.
		w.log.Debug("Skipping empty log", "file", path)
	case errors.As(err, &malformed):
		w.log.Warn("Skipping malformed log", "file", path, "missing", strings.Join(malformed.Missing, ","))
		metrics.RecordParseError(w.runner)
	default:
		w.log.Warn("Skipping unreadable log", "file", path, "error", err)
		metrics.RecordParseError(w.runner)
	}
}

// toolInfo reads the runner's optional auxiliary files. Absence is not an
// error; the runner name alone is enough to key the report.
func (w *workerContext) toolInfo() types.ToolInfo {
	info := types.ToolInfo{Name: w.runner}
	if version, err := os.ReadFile(filepath.Join(w.runnerDir, "version")); err == nil {
		info.Version = strings.TrimSpace(string(version))
	}
	if url, err := os.ReadFile(filepath.Join(w.runnerDir, "url")); err == nil {
		info.URL = strings.TrimSpace(string(url))
	}
	return info
}
