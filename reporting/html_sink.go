package reporting

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/sw23/sv-tests/aggregate"
	"github.com/sw23/sv-tests/types"
)

//go:embed templates/report.tmpl.html
var reportTemplate string

// HTMLReportFilename is the consolidated report page inside the run directory.
const HTMLReportFilename = "report.html"

// HTMLSink renders the consolidated cross-tool report page.
type HTMLSink struct {
	tmpl   *template.Template
	runDir string
}

// NewHTMLSink parses the embedded template and binds the sink to a run
// directory.
func NewHTMLSink(runDir string) (*HTMLSink, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLSink{tmpl: tmpl, runDir: runDir}, nil
}

// reportView is the template's input, flattened so the template stays free
// of map iteration order concerns.
type reportView struct {
	Title     string
	RunID     string
	Generated string
	Groups    []groupView
}

type groupView struct {
	ID        string
	Tools     []toolColumn
	Summaries []summaryView
	Tags      []tagRow
}

type toolColumn struct {
	Name    string
	Version string
	URL     string
}

type summaryView struct {
	Tool             string
	TotalTests       int
	TotalPassedTests int
	TotalTestedTags  int
	TotalPassedTags  int
	TotalTime        string
	PeakRAMMB        string
	PassedThroughput string
}

type tagRow struct {
	Tag         string
	Description string
	URL         string
	Known       bool
	Cells       []tagCell
}

type tagCell struct {
	Status string
	Passed int
	Total  int
}

// Render writes the consolidated report page.
func (s *HTMLSink) Render(results *types.ReportResults, title, runID string, generated time.Time) error {
	view := buildView(results, title, runID, generated)

	path := filepath.Join(s.runDir, HTMLReportFilename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer f.Close()

	if err := s.tmpl.Execute(f, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func buildView(results *types.ReportResults, title, runID string, generated time.Time) reportView {
	view := reportView{
		Title:     title,
		RunID:     runID,
		Generated: generated.UTC().Format(time.RFC3339),
	}

	for _, groupID := range sortedKeys(results.Groups) {
		group := results.Groups[groupID]
		gv := groupView{ID: groupID}

		tools := sortedKeys(group.Summaries)
		for _, tool := range tools {
			info := results.Tools[tool]
			gv.Tools = append(gv.Tools, toolColumn{Name: tool, Version: info.Version, URL: info.URL})

			summary := group.Summaries[tool]
			gv.Summaries = append(gv.Summaries, summaryView{
				Tool:             tool,
				TotalTests:       summary.TotalTests,
				TotalPassedTests: summary.TotalPassedTests,
				TotalTestedTags:  summary.TotalTestedTags,
				TotalPassedTags:  summary.TotalPassedTags,
				TotalTime:        fmt.Sprintf("%.1fs", summary.TotalTime),
				PeakRAMMB:        fmt.Sprintf("%.1f", summary.PeakRAMMB),
				PassedThroughput: fmt.Sprintf("%.1f", summary.PassedThroughput),
			})
		}

		for _, tag := range aggregate.SortedTags(group.Tags) {
			info := results.Tags[tag]
			row := tagRow{
				Tag:         tag,
				Description: info.Description,
				URL:         info.URL,
				Known:       info.Known,
			}
			for _, tool := range tools {
				cell := tagCell{Status: string(types.TestStatusNA)}
				if bucket, ok := group.Tags[tag][tool]; ok {
					cell = tagCell{
						Status: string(bucket.Status()),
						Passed: bucket.PassedTests,
						Total:  len(bucket.Tests),
					}
				}
				row.Cells = append(row.Cells, cell)
			}
			gv.Tags = append(gv.Tags, row)
		}

		view.Groups = append(view.Groups, gv)
	}
	return view
}
