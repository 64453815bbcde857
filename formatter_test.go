package svtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/log"
	"github.com/sw23/sv-tests/types"
)

func TestConsoleResultFormatter(t *testing.T) {
	results := types.NewReportResults()
	results.Tools["toolA"] = types.ToolInfo{Name: "toolA"}

	group := results.Group("tests")
	group.Summaries["toolA"] = &types.ToolSummary{
		TotalTests:       3,
		TotalPassedTests: 2,
		TotalTestedTags:  1,
		TotalPassedTags:  0,
		TotalTime:        1.5,
		PeakRAMMB:        42.0,
		PassedThroughput: 8.0,
	}

	f := NewConsoleResultFormatter(log.Root())
	require.NoError(t, f.FormatResults(results))
}

func TestSummaryStatus(t *testing.T) {
	tests := []struct {
		name     string
		summary  *types.ToolSummary
		expected types.TestStatus
	}{
		{"no tests", &types.ToolSummary{}, types.TestStatusNA},
		{"all failed", &types.ToolSummary{TotalTests: 2}, types.TestStatusFailed},
		{"all passed", &types.ToolSummary{TotalTests: 2, TotalPassedTests: 2}, types.TestStatusPassed},
		{"mixed", &types.ToolSummary{TotalTests: 2, TotalPassedTests: 1}, types.TestStatusVaried},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, summaryStatus(tt.summary))
		})
	}
}

func TestGetResultString(t *testing.T) {
	assert.Equal(t, "✓ pass", getResultString(types.TestStatusPassed))
	assert.Equal(t, "✗ fail", getResultString(types.TestStatusFailed))
	assert.Equal(t, "~ varied", getResultString(types.TestStatusVaried))
	assert.Equal(t, "- n/a", getResultString(types.TestStatusNA))
}
