package svtests

import (
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sw23/sv-tests/types"
)

// ResultFormatter is responsible for formatting and displaying the merged report.
type ResultFormatter interface {
	FormatResults(results *types.ReportResults) error
}

// ConsoleResultFormatter implements the ResultFormatter interface.
type ConsoleResultFormatter struct {
	logger log.Logger
}

// NewConsoleResultFormatter creates a new ConsoleResultFormatter.
func NewConsoleResultFormatter(logger log.Logger) *ConsoleResultFormatter {
	return &ConsoleResultFormatter{
		logger: logger,
	}
}

// FormatResults prints one summary row per (group, tool) pair.
func (f *ConsoleResultFormatter) FormatResults(results *types.ReportResults) error {
	f.logger.Info("Printing results...")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Conformance Results")

	t.AppendHeader(table.Row{
		"Group", "Tool", "Tests", "Passed", "Tags", "Passed Tags", "Wall Time", "Peak RAM (MB)", "Throughput (KiB/s)", "Status",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Group", AutoMerge: true},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Tags", Align: text.AlignRight},
		{Name: "Passed Tags", Align: text.AlignRight},
		{Name: "Wall Time", Align: text.AlignRight},
		{Name: "Peak RAM (MB)", Align: text.AlignRight},
		{Name: "Throughput (KiB/s)", Align: text.AlignRight},
	})

	for _, groupID := range sortedNames(results.Groups) {
		group := results.Groups[groupID]
		for _, tool := range sortedNames(group.Summaries) {
			s := group.Summaries[tool]
			t.AppendRow(table.Row{
				groupID,
				tool,
				s.TotalTests,
				s.TotalPassedTests,
				s.TotalTestedTags,
				s.TotalPassedTags,
				fmt.Sprintf("%.2fs", s.TotalTime),
				fmt.Sprintf("%.1f", s.PeakRAMMB),
				fmt.Sprintf("%.2f", s.PassedThroughput),
				getResultString(summaryStatus(s)),
			})
		}
		t.AppendSeparator()
	}

	t.Render()
	return nil
}

// summaryStatus reduces a tool's group summary to a single status cell.
func summaryStatus(s *types.ToolSummary) types.TestStatus {
	switch {
	case s.TotalTests == 0:
		return types.TestStatusNA
	case s.TotalPassedTests == 0:
		return types.TestStatusFailed
	case s.TotalPassedTests == s.TotalTests:
		return types.TestStatusPassed
	default:
		return types.TestStatusVaried
	}
}

// getResultString returns a short string representing an aggregate status
func getResultString(status types.TestStatus) string {
	switch status {
	case types.TestStatusPassed:
		return "✓ pass"
	case types.TestStatusVaried:
		return "~ varied"
	case types.TestStatusNA:
		return "- n/a"
	default:
		return "✗ fail"
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
