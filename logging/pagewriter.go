// Package logging writes the rendered per-test log pages and per-file source
// listing pages that the consolidated report links to.
package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/sw23/sv-tests/types"
)

const (
	// RunDirectoryPrefix is the standardized prefix for report run directories.
	RunDirectoryPrefix = "report-"

	logsSubdir = "logs"
	srcSubdir  = "src"
)

// FileWriter renders text pages under one run directory. Test pages live
// under logs/<runner>/..., so concurrent runner workers write to disjoint
// subtrees and need no locking.
type FileWriter struct {
	runDir     string
	sourceRoot string
	log        log.Logger
}

// NewFileWriter creates the run directory and returns a writer rooted in it.
func NewFileWriter(baseDir, runID, sourceRoot string, logger log.Logger) (*FileWriter, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}
	if baseDir == "" {
		return nil, fmt.Errorf("baseDir cannot be empty")
	}
	if logger == nil {
		logger = log.Root()
	}

	runDir := filepath.Join(baseDir, RunDirectoryPrefix+runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory %s: %w", runDir, err)
	}

	return &FileWriter{
		runDir:     runDir,
		sourceRoot: sourceRoot,
		log:        logger.New("component", "pagewriter"),
	}, nil
}

// RunDir returns the absolute run directory all pages are written under.
func (fw *FileWriter) RunDir() string {
	return fw.runDir
}

// WriteTestPage renders one test's detail page: a short header followed by
// the raw tool output with ANSI escapes stripped. The returned path is
// relative to the run directory.
func (fw *FileWriter) WriteTestPage(runner string, result *types.TestResult, body string) (string, error) {
	rel := filepath.Join(logsSubdir, runner, result.ResultsGroup, result.Name+".log")
	path := filepath.Join(fw.runDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create page directory: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Test: %s\n", result.Name)
	fmt.Fprintf(&sb, "Tool: %s\n", runner)
	fmt.Fprintf(&sb, "Group: %s\n", result.ResultsGroup)
	fmt.Fprintf(&sb, "Status: %s\n", result.Status)
	fmt.Fprintf(&sb, "Exit code: %d\n", result.ExitCode)
	if len(result.Files) > 0 {
		fmt.Fprintf(&sb, "Files: %s\n", strings.Join(result.Files, " "))
	}
	sb.WriteString("\n")
	sb.WriteString(stripansi.Strip(body))

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write test page: %w", err)
	}
	return rel, nil
}

// SourcePagePath maps an input file's relative path to its listing page,
// relative to the run directory.
func SourcePagePath(rel string) string {
	return filepath.Join(srcSubdir, rel+".txt")
}

// WriteSourcePages renders a listing page for every referenced input file.
// The deduplicated set is sorted and split into contiguous batches of
// roughly equal size across the worker pool. A missing source file is a
// warning, not a failure.
func (fw *FileWriter) WriteSourcePages(ctx context.Context, files map[string]struct{}, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sorted := make([]string, 0, len(files))
	for file := range files {
		sorted = append(sorted, file)
	}
	sort.Strings(sorted)

	batches := splitBatches(sorted, workers)
	fw.log.Debug("Rendering source pages", "files", len(sorted), "batches", len(batches))

	p := pool.New().WithErrors().WithMaxGoroutines(workers).WithContext(ctx)
	for _, batch := range batches {
		batch := batch
		p.Go(func(ctx context.Context) error {
			for _, rel := range batch {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fw.writeSourcePage(rel); err != nil {
					fw.log.Warn("Failed to render source page", "file", rel, "error", err)
				}
			}
			return nil
		})
	}
	return p.Wait()
}

func (fw *FileWriter) writeSourcePage(rel string) error {
	src := rel
	if fw.sourceRoot != "" && !filepath.IsAbs(rel) {
		src = filepath.Join(fw.sourceRoot, rel)
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	path := filepath.Join(fw.runDir, SourcePagePath(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// splitBatches cuts the sorted file list into at most n contiguous slices of
// roughly equal size.
func splitBatches(files []string, n int) [][]string {
	if len(files) == 0 {
		return nil
	}
	if n > len(files) {
		n = len(files)
	}

	batches := make([][]string, 0, n)
	size := len(files) / n
	extra := len(files) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < extra {
			end++
		}
		batches = append(batches, files[start:end])
		start = end
	}
	return batches
}
