package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sw23/sv-tests/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		exitCode    int
		shouldFail  bool
		toolSuccess bool
		mode        string
		body        string
		sim         SimulationCheck
		want        types.TestStatus
	}{
		{
			name:        "clean pass",
			toolSuccess: true,
			want:        types.TestStatusPassed,
		},
		{
			name:        "crash exit code overrides agreement",
			exitCode:    126,
			toolSuccess: true,
			want:        types.TestStatusFailed,
		},
		{
			name:        "killed by signal",
			exitCode:    139,
			shouldFail:  true,
			toolSuccess: false,
			want:        types.TestStatusFailed,
		},
		{
			name:        "failed as expected",
			shouldFail:  true,
			toolSuccess: false,
			want:        types.TestStatusPassed,
		},
		{
			name:        "expected to fail but passed",
			shouldFail:  true,
			toolSuccess: true,
			want:        types.TestStatusFailed,
		},
		{
			name:        "expected to pass but failed",
			shouldFail:  false,
			toolSuccess: false,
			want:        types.TestStatusFailed,
		},
		{
			name:        "simulation content check failure",
			toolSuccess: true,
			mode:        "simulation",
			body:        "SIMULATION FAILED\n",
			sim:         DefaultSimulationCheck,
			want:        types.TestStatusFailed,
		},
		{
			name:        "simulation content check pass",
			toolSuccess: true,
			mode:        "simulation",
			body:        "all outputs matched\n",
			sim:         DefaultSimulationCheck,
			want:        types.TestStatusPassed,
		},
		{
			name:        "content check only applies to simulation mode",
			toolSuccess: true,
			mode:        "parsing",
			body:        "SIMULATION FAILED\n",
			sim:         DefaultSimulationCheck,
			want:        types.TestStatusPassed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := &types.TestResult{
				ExitCode:    tc.exitCode,
				ShouldFail:  tc.shouldFail,
				ToolSuccess: tc.toolSuccess,
				Mode:        tc.mode,
			}
			assert.Equal(t, tc.want, Classify(result, tc.body, tc.sim))
		})
	}
}

func TestDefaultSimulationCheck(t *testing.T) {
	assert.False(t, DefaultSimulationCheck(""))
	assert.False(t, DefaultSimulationCheck("  \n"))
	assert.False(t, DefaultSimulationCheck("SIMULATION FAILED\n"))
	assert.True(t, DefaultSimulationCheck("0 mismatches\n"))
}
