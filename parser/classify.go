package parser

import (
	"strings"

	"github.com/sw23/sv-tests/types"
)

// SimulationCheck is the content check applied to the raw log body of
// simulation-mode tests. It reports whether the simulation output looks
// correct. Exit codes alone cannot catch a tool that exits 0 with wrong
// simulation output.
type SimulationCheck func(body string) bool

// crashExitCode is the conventional floor for process-crash exit codes
// (126 = not executable, 127 = not found, 128+n = killed by signal n).
const crashExitCode = 126

// Classify combines exit code, expected-failure flag and the optional
// simulation content check into a single verdict. Rules apply in order,
// first match wins:
//
//  1. A crash exit code, or disagreement between the expected-failure flag
//     and the tool-reported failure, is a failure. Disagreement covers both
//     "expected to fail but passed" and "expected to pass but failed".
//  2. A simulation-mode test whose body fails the content check is a failure.
//  3. Everything else passed.
func Classify(result *types.TestResult, body string, sim SimulationCheck) types.TestStatus {
	toolFailed := !result.ToolSuccess
	if result.ExitCode >= crashExitCode || result.ShouldFail != toolFailed {
		return types.TestStatusFailed
	}
	if result.Mode == "simulation" && sim != nil && !sim(body) {
		return types.TestStatusFailed
	}
	return types.TestStatusPassed
}

// DefaultSimulationCheck is the check used when no pass-pattern is
// configured: the body must be non-empty and must not announce a failed
// simulation.
func DefaultSimulationCheck(body string) bool {
	if strings.TrimSpace(body) == "" {
		return false
	}
	return !strings.Contains(body, "SIMULATION FAILED")
}
