// Package parser reads one runner log file and turns it into a classified
// TestResult. A malformed file is reported as an error and skipped by the
// caller; it never aborts the surrounding run.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sw23/sv-tests/tagdb"
	"github.com/sw23/sv-tests/types"
)

// ErrEmptyLog marks zero-byte log files. They represent tests that did not
// run and are skipped without a warning.
var ErrEmptyLog = errors.New("empty log file")

// MalformedLogError reports a header line that did not parse while required
// fields were still outstanding.
type MalformedLogError struct {
	Path    string
	Line    int
	Missing []string
}

func (e *MalformedLogError) Error() string {
	return fmt.Sprintf("malformed log %s: bad header at line %d, missing fields: %s",
		e.Path, e.Line, strings.Join(e.Missing, ", "))
}

// requiredFields is the fixed header schema every log must carry.
var requiredFields = []string{
	"name",
	"tags",
	"should_fail",
	"rc",
	"date_completed",
	"description",
	"files",
	"incdirs",
	"top_module",
	"runner",
	"runner_url",
	"time_elapsed",
	"type",
	"mode",
	"timeout",
	"user_time",
	"system_time",
	"ram_usage",
	"tool_success",
	"should_fail_because",
	"defines",
	"compatible-runners",
	"results_group",
}

// headerLine matches `key: value` where key is letters, underscore or hyphen.
var headerLine = regexp.MustCompile(`^([A-Za-z_-]+):\s?(.*)$`)

// LogRecord is the raw parse of one log file: header fields plus the
// verbatim trailing body. It only lives until classification completes.
type LogRecord struct {
	Fields map[string]string
	Body   string
}

// Config contains parser configuration.
type Config struct {
	Log log.Logger
	// SourceRoot resolves relative input file paths when computing total
	// input size. Empty means paths are taken as-is.
	SourceRoot string
	// Sim is the simulation-correctness content check applied to the log
	// body of simulation-mode tests.
	Sim SimulationCheck
	// Tags performs meta-tag expansion; nil disables it.
	Tags *tagdb.DB
}

// Parser converts log files into classified TestResults.
type Parser struct {
	cfg Config
	log log.Logger
}

// New creates a parser.
func New(cfg Config) *Parser {
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Parser{
		cfg: cfg,
		log: cfg.Log.New("component", "parser"),
	}
}

// ParseFile reads one log file and returns the classified result plus its
// free-text body. Returns ErrEmptyLog for zero-byte files and a
// *MalformedLogError for files whose header cannot be completed.
func (p *Parser) ParseFile(path string) (*types.TestResult, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading log %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyLog
	}

	record, err := p.parseRecord(path, data)
	if err != nil {
		return nil, "", err
	}

	result, err := p.decode(path, record)
	if err != nil {
		return nil, "", err
	}

	result.Status = Classify(result, record.Body, p.cfg.Sim)
	return result, record.Body, nil
}

// parseRecord scans header lines until every required field has been seen.
// Everything after the last header line is the body, consumed verbatim so
// tool output containing colons is never misread as a header.
func (p *Parser) parseRecord(path string, data []byte) (*LogRecord, error) {
	record := &LogRecord{Fields: make(map[string]string, len(requiredFields))}

	outstanding := make(map[string]bool, len(requiredFields))
	for _, f := range requiredFields {
		outstanding[f] = true
	}

	pos := 0
	lineno := 0
	for pos < len(data) && len(outstanding) > 0 {
		lineno++
		end := pos
		for end < len(data) && data[end] != '\n' {
			end++
		}
		line := string(data[pos:end])

		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			return nil, &MalformedLogError{Path: path, Line: lineno, Missing: missingFields(outstanding)}
		}
		key, value := m[1], m[2]

		switch {
		case outstanding[key]:
			record.Fields[key] = value
			delete(outstanding, key)
		case isRequired(key):
			// First occurrence wins.
			p.log.Warn("Duplicate field in log header", "file", path, "line", lineno, "key", key)
		default:
			p.log.Warn("Unknown field in log header", "file", path, "line", lineno, "key", key)
		}

		pos = end
		if pos < len(data) {
			pos++ // consume the newline
		}
	}

	if len(outstanding) > 0 {
		return nil, &MalformedLogError{Path: path, Line: lineno, Missing: missingFields(outstanding)}
	}

	record.Body = string(data[pos:])
	return record, nil
}

// decode converts the raw header fields into a typed TestResult.
func (p *Parser) decode(path string, record *LogRecord) (*types.TestResult, error) {
	get := func(key string) string { return record.Fields[key] }

	result := &types.TestResult{
		Name:              get("name"),
		ResultsGroup:      get("results_group"),
		Tags:              strings.Fields(get("tags")),
		Types:             strings.Fields(get("type")),
		Files:             strings.Fields(get("files")),
		IncDirs:           strings.Fields(get("incdirs")),
		Defines:           strings.Fields(get("defines")),
		TopModule:         get("top_module"),
		Tool:              get("runner"),
		ToolURL:           get("runner_url"),
		Mode:              get("mode"),
		Description:       get("description"),
		DateCompleted:     get("date_completed"),
		ShouldFailReason:  get("should_fail_because"),
		CompatibleRunners: strings.Fields(get("compatible-runners")),
	}

	var err error
	if result.ExitCode, err = strconv.Atoi(strings.TrimSpace(get("rc"))); err != nil {
		return nil, fmt.Errorf("log %s: bad rc %q: %w", path, get("rc"), err)
	}
	if result.ShouldFail, err = parseBool(get("should_fail")); err != nil {
		return nil, fmt.Errorf("log %s: bad should_fail %q: %w", path, get("should_fail"), err)
	}
	if result.ToolSuccess, err = parseBool(get("tool_success")); err != nil {
		return nil, fmt.Errorf("log %s: bad tool_success %q: %w", path, get("tool_success"), err)
	}
	for key, dst := range map[string]*float64{
		"timeout":      &result.Timeout,
		"time_elapsed": &result.TimeElapsed,
		"user_time":    &result.TimeUser,
		"system_time":  &result.TimeSystem,
		"ram_usage":    &result.RAMUsageKB,
	} {
		if *dst, err = parseFloat(record.Fields[key]); err != nil {
			return nil, fmt.Errorf("log %s: bad %s %q: %w", path, key, record.Fields[key], err)
		}
	}

	if p.cfg.Tags != nil {
		result.Tags = p.cfg.Tags.Expand(result.Tags)
	}
	result.TotalInputBytes = p.totalInputSize(result.Files)

	return result, nil
}

// totalInputSize sums the on-disk sizes of the test's input files. A file
// that cannot be stat'ed contributes zero; the log itself stays usable.
func (p *Parser) totalInputSize(files []string) int64 {
	var total int64
	for _, f := range files {
		path := f
		if p.cfg.SourceRoot != "" && !filepath.IsAbs(f) {
			path = filepath.Join(p.cfg.SourceRoot, f)
		}
		info, err := os.Stat(path)
		if err != nil {
			p.log.Debug("Input file not found while sizing", "file", path)
			continue
		}
		total += info.Size()
	}
	return total
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func isRequired(key string) bool {
	for _, f := range requiredFields {
		if f == key {
			return true
		}
	}
	return false
}

func missingFields(outstanding map[string]bool) []string {
	missing := make([]string, 0, len(outstanding))
	for _, f := range requiredFields {
		if outstanding[f] {
			missing = append(missing, f)
		}
	}
	return missing
}
