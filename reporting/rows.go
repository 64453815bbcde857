// Package reporting turns the merged ReportResults into renderable and
// exportable artifacts: the flat CSV table, per-(tool,tag) config fragments
// and the consolidated HTML report.
package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sw23/sv-tests/types"
)

// CSVHeader is the fixed column set of the flat row-per-(test,tool) table.
var CSVHeader = []string{
	"TestName",
	"Tool",
	"Group",
	"Pass",
	"ExitCode",
	"Tags",
	"InputBytes",
	"AllowedTimeout",
	"TimeUser",
	"TimeSystem",
	"TimeWall",
	"RamUsageMiB",
}

// RowWriter consumes the flat table. The CSV file format itself is the
// collaborator's concern; building the rows is ours.
type RowWriter interface {
	WriteRows(header []string, rows [][]string) error
}

// BuildRows flattens the report into one row per (test, tool). Groups and
// tools are emitted in sorted order; tests keep their numeric-aware order
// from aggregation, so the output is deterministic.
func BuildRows(results *types.ReportResults) [][]string {
	var rows [][]string
	for _, groupID := range sortedKeys(results.Groups) {
		group := results.Groups[groupID]
		for _, tool := range sortedKeys(group.Tests) {
			for _, test := range group.Tests[tool] {
				rows = append(rows, []string{
					test.Name,
					tool,
					groupID,
					boolToCell(test.Status.Passed()),
					strconv.Itoa(test.ExitCode),
					strings.Join(test.Tags, " "),
					strconv.FormatInt(test.TotalInputBytes, 10),
					formatSeconds(test.Timeout),
					formatSeconds(test.TimeUser),
					formatSeconds(test.TimeSystem),
					formatSeconds(test.TimeElapsed),
					formatSeconds(test.RAMUsageKB / 1024),
				})
			}
		}
	}
	return rows
}

// CSVFile writes the flat table with encoding/csv.
type CSVFile struct {
	Path string
}

// WriteRows implements RowWriter.
func (c *CSVFile) WriteRows(header []string, rows [][]string) error {
	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", c.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func boolToCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
