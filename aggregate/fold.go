// Package aggregate folds classified test results into per-group, per-tag,
// per-tool structures and merges independent per-runner aggregates into the
// final cross-tool report.
package aggregate

import (
	"github.com/sw23/sv-tests/types"
)

// minThroughputBytes is the input-size floor below which a passed test is
// excluded from the throughput figure. Trivial tests would otherwise skew it.
const minThroughputBytes = 1024

// kibibyte converts byte-per-second rates to KiB/s and kilobytes to megabytes.
const kibibyte = 1024

// Fold reduces one runner's classified results into per-group partial
// aggregates. It runs inside a single worker with no shared state; the
// cross-runner merge happens later in the coordinator.
func Fold(results []*types.TestResult) map[string]*types.PartialGroupData {
	groups := make(map[string]*types.PartialGroupData)

	for _, result := range results {
		partial, ok := groups[result.ResultsGroup]
		if !ok {
			partial = types.NewPartialGroupData()
			groups[result.ResultsGroup] = partial
		}

		partial.Tests = append(partial.Tests, result)
		for _, tag := range result.Tags {
			partial.Tag(tag).Append(result)
		}

		summary := partial.Summary
		summary.TotalTime += result.TimeElapsed
		summary.UserTime += result.TimeUser
		summary.SystemTime += result.TimeSystem
		if ramMB := result.RAMUsageKB / kibibyte; ramMB > summary.PeakRAMMB {
			summary.PeakRAMMB = ramMB
		}
		summary.TotalTests++
		if result.Status.Passed() {
			summary.TotalPassedTests++
			if result.TotalInputBytes > minThroughputBytes {
				summary.PassedBytes += result.TotalInputBytes
				summary.PassedSeconds += result.TimeElapsed
			}
		}
	}

	for _, partial := range groups {
		finalize(partial)
	}
	return groups
}

// finalize computes the derived per-group figures once all records are in:
// tag pass counters, deterministic test ordering and passed throughput.
func finalize(partial *types.PartialGroupData) {
	summary := partial.Summary

	for _, bucket := range partial.Tags {
		if bucket.Tested() {
			summary.TotalTestedTags++
		}
		if bucket.Status() == types.TestStatusPassed {
			summary.TotalPassedTags++
		}
		SortTests(bucket.Tests)
	}
	SortTests(partial.Tests)

	// Guard the zero-time case: no qualifying passed tests means no rate.
	if summary.PassedSeconds > 0 {
		summary.PassedThroughput = float64(summary.PassedBytes) / summary.PassedSeconds / kibibyte
	}
}
