package types

// TagToolResult accumulates the outcome of one tag under one tool.
type TagToolResult struct {
	Tests       []*TestResult
	PassedTests int
	Types       []string
}

// Append folds one classified result into the bucket.
func (t *TagToolResult) Append(result *TestResult) {
	t.Tests = append(t.Tests, result)
	if result.Status.Passed() {
		t.PassedTests++
	}
	for _, typ := range result.Types {
		t.Types = appendUnique(t.Types, typ)
	}
}

// Status derives the bucket outcome: NA without tests, Failed when nothing
// passed, Passed when everything passed, Varied otherwise.
func (t *TagToolResult) Status() TestStatus {
	switch {
	case len(t.Tests) == 0:
		return TestStatusNA
	case t.PassedTests == 0:
		return TestStatusFailed
	case t.PassedTests == len(t.Tests):
		return TestStatusPassed
	default:
		return TestStatusVaried
	}
}

// Tested reports whether the bucket saw at least one test.
func (t *TagToolResult) Tested() bool {
	return t.Status() != TestStatusNA
}

// PartialGroupData is the per-runner, not-yet-merged shape of one results
// group. One worker produces one PartialGroupData per group it touched;
// nothing here is shared between workers.
type PartialGroupData struct {
	Tests   []*TestResult
	Summary *ToolSummary
	Tags    map[string]*TagToolResult
}

// NewPartialGroupData creates an empty per-runner group aggregate.
func NewPartialGroupData() *PartialGroupData {
	return &PartialGroupData{
		Summary: &ToolSummary{},
		Tags:    make(map[string]*TagToolResult),
	}
}

// Tag returns the bucket for the given tag, creating it if absent.
func (p *PartialGroupData) Tag(tag string) *TagToolResult {
	bucket, ok := p.Tags[tag]
	if !ok {
		bucket = &TagToolResult{}
		p.Tags[tag] = bucket
	}
	return bucket
}

// GroupData is the merged cross-runner shape of one results group. The outer
// maps are keyed by tool name; Tags is keyed by tag, then tool. Entries from
// different runners never collide because each runner contributes exactly one
// tool key.
type GroupData struct {
	Tests     map[string][]*TestResult
	Summaries map[string]*ToolSummary
	Tags      map[string]map[string]*TagToolResult
}

// NewGroupData creates an empty cross-runner group.
func NewGroupData() *GroupData {
	return &GroupData{
		Tests:     make(map[string][]*TestResult),
		Summaries: make(map[string]*ToolSummary),
		Tags:      make(map[string]map[string]*TagToolResult),
	}
}

// TagTools returns the per-tool map for the given tag, creating it if absent.
func (g *GroupData) TagTools(tag string) map[string]*TagToolResult {
	tools, ok := g.Tags[tag]
	if !ok {
		tools = make(map[string]*TagToolResult)
		g.Tags[tag] = tools
	}
	return tools
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
