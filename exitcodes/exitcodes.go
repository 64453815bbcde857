// Package exitcodes defines the standard exit codes used by svreport.
package exitcodes

// Exit code constants used by svreport:
//
// * Success (0): the report was generated
// * ReportFailure (1): the final render/export step failed
// * RuntimeErr (2): configuration or other operational errors
const (
	Success       = 0
	ReportFailure = 1
	RuntimeErr    = 2
)
