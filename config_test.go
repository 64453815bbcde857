package svtests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sw23/sv-tests/parser"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyReportSettingsOverrides(t *testing.T) {
	cfg := &Config{
		Title:     "default title",
		Sim:       parser.DefaultSimulationCheck,
		HTML:      true,
		Fragments: true,
	}

	path := writeSettings(t, `
title: custom title
simulation_pass_regexp: "ALL TESTS PASSED"
disable_fragments: true
`)
	require.NoError(t, cfg.applyReportSettings(path))

	assert.Equal(t, "custom title", cfg.Title)
	assert.True(t, cfg.HTML)
	assert.False(t, cfg.Fragments)
	assert.True(t, cfg.Sim("output: ALL TESTS PASSED"))
	assert.False(t, cfg.Sim("output: 3 failures"))
}

func TestApplyReportSettingsKeepsDefaults(t *testing.T) {
	cfg := &Config{
		Title:     "default title",
		Sim:       parser.DefaultSimulationCheck,
		HTML:      true,
		Fragments: true,
	}

	require.NoError(t, cfg.applyReportSettings(writeSettings(t, "{}")))

	assert.Equal(t, "default title", cfg.Title)
	assert.True(t, cfg.HTML)
	assert.True(t, cfg.Fragments)
	assert.True(t, cfg.Sim("simulation output"), "default check survives an empty settings file")
}

func TestApplyReportSettingsBadRegexp(t *testing.T) {
	cfg := &Config{Sim: parser.DefaultSimulationCheck}
	err := cfg.applyReportSettings(writeSettings(t, `simulation_pass_regexp: "["`))
	require.Error(t, err)
}

func TestApplyReportSettingsMissingFile(t *testing.T) {
	cfg := &Config{}
	err := cfg.applyReportSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
