package aggregate

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/sw23/sv-tests/tagdb"
	"github.com/sw23/sv-tests/types"
)

// RunnerOutput is everything one worker produced for one runner: the tool's
// metadata and its per-group partial aggregates.
type RunnerOutput struct {
	Tool   types.ToolInfo
	Groups map[string]*types.PartialGroupData
}

// Merge combines independently computed per-runner outputs into one
// ReportResults. Outputs must be supplied in runner submission order; the
// order is preserved, so the report stays deterministic regardless of which
// worker finished first. At this level the maps are keyed by tool name, so
// entries from different runners never collide and no locking is needed.
func Merge(outputs []*RunnerOutput, db *tagdb.DB, logger log.Logger) *types.ReportResults {
	if logger == nil {
		logger = log.Root()
	}
	logger = logger.New("component", "merge")

	results := types.NewReportResults()
	for tag, info := range db.Tags() {
		results.Tags[tag] = info
	}

	for _, output := range outputs {
		tool := output.Tool.Name
		results.Tools[tool] = output.Tool

		for groupID, partial := range output.Groups {
			group := results.Group(groupID)
			group.Tests[tool] = partial.Tests
			group.Summaries[tool] = partial.Summary

			for tag, bucket := range partial.Tags {
				group.TagTools(tag)[tool] = bucket

				if _, known := results.Tags[tag]; !known {
					logger.Warn("Tag missing from reference catalog", "tag", tag, "tool", tool, "group", groupID)
					results.Tags[tag] = db.Lookup(tag)
				}
			}

			// The global input-file set feeds batch rendering of source
			// pages. Keyed by relative path, so a file shared between
			// runners is rendered once.
			for _, test := range partial.Tests {
				for _, file := range test.Files {
					results.InputFiles[file] = struct{}{}
				}
			}
		}
	}

	return results
}
