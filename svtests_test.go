package svtests

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sw23/sv-tests/logging"
	"github.com/sw23/sv-tests/parser"
)

func sampleLog(name, group, runner string, rc int, toolSuccess bool) string {
	return fmt.Sprintf(`name: %s
tags: parsing
should_fail: false
rc: %d
date_completed: 2026-08-01 12:00:00
description: sample test
files: tests/%s.sv
incdirs:
top_module: top
runner: %s
runner_url: https://example.com/%s
time_elapsed: 0.25
type: parsing
mode: parsing
timeout: 30
user_time: 0.2
system_time: 0.05
ram_usage: 2048
tool_success: %t
should_fail_because:
defines:
compatible-runners: %s
results_group: %s
tool output
`, name, rc, name, runner, runner, toolSuccess, runner, group)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReporterRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	srcDir := filepath.Join(dir, "src")
	outDir := filepath.Join(dir, "out")
	csvPath := filepath.Join(dir, "report.csv")

	writeFile(t, filepath.Join(logDir, "toolA", "tests", "case1.log"), sampleLog("case1", "tests", "toolA", 0, true))
	writeFile(t, filepath.Join(logDir, "toolA", "tests", "case2.log"), sampleLog("case2", "tests", "toolA", 1, false))
	writeFile(t, filepath.Join(logDir, "toolB", "tests", "case1.log"), sampleLog("case1", "tests", "toolB", 0, true))
	writeFile(t, filepath.Join(srcDir, "tests", "case1.sv"), string(bytes.Repeat([]byte("x"), 2048)))
	writeFile(t, filepath.Join(srcDir, "tests", "case2.sv"), "module top; endmodule\n")

	tagFile := filepath.Join(dir, "tags.tsv")
	writeFile(t, tagFile, "parsing\tBasic parsing\thttps://example.com/lrm\n")

	cfg := &Config{
		LogDir:    logDir,
		SourceDir: srcDir,
		OutDir:    outDir,
		TagFile:   tagFile,
		CSVFile:   csvPath,
		LogExt:    ".log",
		Workers:   2,
		Title:     "Conformance report",
		Sim:       parser.DefaultSimulationCheck,
		HTML:      true,
		Fragments: true,
	}

	reporter, err := New(cfg, "test")
	require.NoError(t, err)
	require.NoError(t, reporter.Run(context.Background()))

	runDir := filepath.Join(outDir, logging.RunDirectoryPrefix+reporter.RunID())
	assert.FileExists(t, filepath.Join(runDir, "report.html"))
	assert.FileExists(t, filepath.Join(runDir, "logs", "toolA", "tests", "case1.log"))
	assert.FileExists(t, filepath.Join(runDir, "logs", "toolB", "tests", "case1.log"))
	assert.FileExists(t, filepath.Join(runDir, "src", "tests", "case1.sv.txt"))
	assert.FileExists(t, filepath.Join(runDir, "fragments", "toolA", "parsing.json"))
	assert.FileExists(t, csvPath)

	html, err := os.ReadFile(filepath.Join(runDir, "report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Conformance report")
	assert.Contains(t, string(html), "toolB")
}

func TestReporterRunMissingTagFileIsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(filepath.Join(logDir, "toolA"), 0o755))

	cfg := &Config{
		LogDir:  logDir,
		OutDir:  filepath.Join(dir, "out"),
		TagFile: filepath.Join(dir, "missing.tsv"),
		LogExt:  ".log",
	}

	reporter, err := New(cfg, "test")
	require.NoError(t, err)

	err = reporter.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsRuntimeError(err))
}

func TestReporterRunNoRunnersIsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	tagFile := filepath.Join(dir, "tags.tsv")
	writeFile(t, tagFile, "parsing\tBasic parsing\n")

	cfg := &Config{
		LogDir:  logDir,
		OutDir:  filepath.Join(dir, "out"),
		TagFile: tagFile,
		LogExt:  ".log",
	}

	reporter, err := New(cfg, "test")
	require.NoError(t, err)

	err = reporter.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsRuntimeError(err))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, "test")
	require.Error(t, err)
}
