package types

// TestStatus represents the possible outcomes of a test execution
type TestStatus string

const (
	// TestStatusNA marks records that could not be classified and tag
	// buckets that contain no tests. It is never produced by a
	// well-formed log.
	TestStatusNA     TestStatus = "na"
	TestStatusPassed TestStatus = "passed"
	TestStatusFailed TestStatus = "failed"
	// TestStatusVaried is reserved for aggregates whose members disagree.
	// It is never assigned to an individual TestResult.
	TestStatusVaried TestStatus = "varied"
)

// Passed reports whether the status counts as a passing outcome.
func (s TestStatus) Passed() bool {
	return s == TestStatusPassed
}
