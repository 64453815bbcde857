package reporting

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sw23/sv-tests/types"
)

func sampleResults() *types.ReportResults {
	passed := &types.TestResult{
		Name:            "case_assign",
		ResultsGroup:    "tests",
		Tags:            []string{"parsing", "assignments"},
		Status:          types.TestStatusPassed,
		ExitCode:        0,
		TotalInputBytes: 2048,
		Timeout:         30,
		TimeUser:        0.2,
		TimeSystem:      0.05,
		TimeElapsed:     0.25,
		RAMUsageKB:      2048,
		LogPage:         "logs/toolA/tests/case_assign.log",
		Files:           []string{"tests/assign.sv"},
	}
	failed := &types.TestResult{
		Name:         "case_bad",
		ResultsGroup: "tests",
		Tags:         []string{"parsing"},
		Status:       types.TestStatusFailed,
		ExitCode:     1,
	}

	bucket := &types.TagToolResult{}
	bucket.Append(passed)
	bucket.Append(failed)

	results := types.NewReportResults()
	results.Tools["toolA"] = types.ToolInfo{Name: "toolA", Version: "1.0"}
	results.Tags["parsing"] = types.TagInfo{Tag: "parsing", Description: "Parsing", Known: true}

	group := results.Group("tests")
	group.Tests["toolA"] = []*types.TestResult{passed, failed}
	group.Summaries["toolA"] = &types.ToolSummary{
		TotalTests:       2,
		TotalPassedTests: 1,
		TotalTestedTags:  1,
		PassedThroughput: 8.0,
	}
	group.TagTools("parsing")["toolA"] = bucket
	return results
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(sampleResults())
	require.Len(t, rows, 2)

	first := rows[0]
	require.Len(t, first, len(CSVHeader))
	assert.Equal(t, "case_assign", first[0])
	assert.Equal(t, "toolA", first[1])
	assert.Equal(t, "tests", first[2])
	assert.Equal(t, "1", first[3])
	assert.Equal(t, "0", first[4])
	assert.Equal(t, "parsing assignments", first[5])
	assert.Equal(t, "2048", first[6])
	assert.Equal(t, "30", first[7])
	assert.Equal(t, "0.25", first[10])
	assert.Equal(t, "2", first[11]) // 2048 KB -> 2 MiB

	second := rows[1]
	assert.Equal(t, "case_bad", second[0])
	assert.Equal(t, "0", second[3])
}

func TestCSVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := BuildRows(sampleResults())

	require.NoError(t, (&CSVFile{Path: path}).WriteRows(CSVHeader, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, rows[0], records[1])
}
