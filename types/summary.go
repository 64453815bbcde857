package types

// ToolSummary accumulates per-runner totals for one results group.
type ToolSummary struct {
	TotalTime  float64 // wall time, seconds
	UserTime   float64 // seconds
	SystemTime float64 // seconds
	PeakRAMMB  float64 // running maximum, megabytes

	TotalTests       int
	TotalPassedTests int
	TotalTestedTags  int
	TotalPassedTags  int

	// PassedThroughput is passed-test input bytes per second in KiB/s,
	// restricted to tests above the minimum size floor. Zero when no
	// qualifying time was accumulated.
	PassedThroughput float64

	// Throughput accumulator inputs, exported so the derived figure can be
	// recomputed after merging if ever needed.
	PassedBytes   int64
	PassedSeconds float64
}

// ToolInfo is the per-runner metadata read from its auxiliary files.
type ToolInfo struct {
	Name    string
	Version string
	URL     string
}

// TagInfo describes one entry of the static tag reference table.
type TagInfo struct {
	Tag         string
	Description string
	URL         string
	// Known is false for tags discovered in logs but absent from the
	// reference table.
	Known bool
}

// ReportResults is the root of the merged cross-tool report.
type ReportResults struct {
	// Groups maps results-group id to its merged data.
	Groups map[string]*GroupData
	// Tools maps tool name to its metadata.
	Tools map[string]ToolInfo
	// Tags is the tag catalog: reference entries plus discovered unknowns.
	Tags map[string]TagInfo
	// InputFiles is the deduplicated set of every input file referenced by
	// any test across all runners, keyed by relative path.
	InputFiles map[string]struct{}
}

// NewReportResults creates an empty report root.
func NewReportResults() *ReportResults {
	return &ReportResults{
		Groups:     make(map[string]*GroupData),
		Tools:      make(map[string]ToolInfo),
		Tags:       make(map[string]TagInfo),
		InputFiles: make(map[string]struct{}),
	}
}

// Group returns the merged data for the given group id, creating it if absent.
func (r *ReportResults) Group(id string) *GroupData {
	group, ok := r.Groups[id]
	if !ok {
		group = NewGroupData()
		r.Groups[id] = group
	}
	return group
}
