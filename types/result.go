package types

// TestResult captures the outcome of a single test execution under one tool.
// It is created fresh per log file, immutable once classification completes,
// and folded into per-group aggregates afterwards.
type TestResult struct {
	// Identity
	Name         string
	ResultsGroup string
	Tags         []string
	Types        []string

	// Inputs. Files preserves log order; the first entry is the primary
	// input file. TotalInputBytes is the combined size of all inputs.
	Files           []string
	IncDirs         []string
	Defines         []string
	TopModule       string
	TotalInputBytes int64

	// Tool under test
	Tool        string
	ToolURL     string
	Mode        string
	Description string

	// Outcome
	Status           TestStatus
	ExitCode         int
	ShouldFail       bool
	ShouldFailReason string
	ToolSuccess      bool

	// Timing and resources
	Timeout     float64 // allowed wall time, seconds
	TimeElapsed float64 // wall time, seconds
	TimeUser    float64 // seconds
	TimeSystem  float64 // seconds
	RAMUsageKB  float64 // peak resident set, kilobytes

	DateCompleted     string
	CompatibleRunners []string

	// LogPage is the relative path of the rendered detail page for this
	// test. Empty until rendering assigns it.
	LogPage string
}

// HasTag reports whether the result carries the given tag.
func (r *TestResult) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PrimaryFile returns the first input file, or "" when the test has none.
func (r *TestResult) PrimaryFile() string {
	if len(r.Files) == 0 {
		return ""
	}
	return r.Files[0]
}
