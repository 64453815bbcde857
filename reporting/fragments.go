package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sw23/sv-tests/logging"
	"github.com/sw23/sv-tests/types"
)

// fragmentsSubdir is where per-(tool,tag) config fragments land inside the
// run directory.
const fragmentsSubdir = "fragments"

// WriteFragments emits one JSON file per (tool, tag) pair: a list of
// [group, name, passed(0/1), logPage, firstInputPage] tuples for every test
// carrying the tag under the tool, across all groups. The templating
// collaborator consumes these when it builds per-tag drill-down pages.
func WriteFragments(runDir string, results *types.ReportResults) error {
	type key struct{ tool, tag string }
	tuples := make(map[key][][]any)

	for _, groupID := range sortedKeys(results.Groups) {
		group := results.Groups[groupID]
		for _, tag := range sortedKeys(group.Tags) {
			for tool, bucket := range group.Tags[tag] {
				k := key{tool, tag}
				for _, test := range bucket.Tests {
					firstInput := ""
					if primary := test.PrimaryFile(); primary != "" {
						firstInput = logging.SourcePagePath(primary)
					}
					tuples[k] = append(tuples[k], []any{
						groupID,
						test.Name,
						passedToInt(test.Status.Passed()),
						test.LogPage,
						firstInput,
					})
				}
			}
		}
	}

	keys := make([]key, 0, len(tuples))
	for k := range tuples {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].tool != keys[j].tool {
			return keys[i].tool < keys[j].tool
		}
		return keys[i].tag < keys[j].tag
	})

	for _, k := range keys {
		if err := writeFragment(runDir, k.tool, k.tag, tuples[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeFragment(runDir, tool, tag string, tuples [][]any) error {
	dir := filepath.Join(runDir, fragmentsSubdir, tool)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create fragment directory: %w", err)
	}

	data, err := json.MarshalIndent(tuples, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fragment for tool %s tag %s: %w", tool, tag, err)
	}

	path := filepath.Join(dir, tag+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write fragment %s: %w", path, err)
	}
	return nil
}

func passedToInt(passed bool) int {
	if passed {
		return 1
	}
	return 0
}
