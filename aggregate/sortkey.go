package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sw23/sv-tests/types"
)

// NaturalKey returns a sort key under which embedded integer runs compare by
// numeric value rather than lexicographically, so "test2" sorts before
// "test10". Every maximal digit run is prefixed with its own decimal length
// and the result is lower-cased.
//
// Known limit: digit runs longer than 9 digits get a multi-digit length
// prefix, which breaks the ordering between runs of very different lengths.
// Test names never carry such runs; the limit is accepted and documented
// rather than silently changing the sort semantics.
func NaturalKey(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)

	i := 0
	for i < len(s) {
		if isDigit(s[i]) {
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			sb.WriteString(strconv.Itoa(j - i))
			sb.WriteString(s[i:j])
			i = j
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return strings.ToLower(sb.String())
}

// TagKey is the tag-aware variant of NaturalKey: identifiers starting with a
// letter order before ones starting with a digit, so synthetic bucket names
// (often plain numbers) sort after human-named ones.
func TagKey(s string) string {
	prefix := "0"
	if len(s) > 0 && isDigit(s[0]) {
		prefix = "1"
	}
	return prefix + NaturalKey(s)
}

// SortTests orders a test list by the numeric-aware key of the test name.
// This is what makes bucket ordering independent of filesystem enumeration
// and worker scheduling order.
func SortTests(tests []*types.TestResult) {
	sort.Slice(tests, func(i, j int) bool {
		return NaturalKey(tests[i].Name) < NaturalKey(tests[j].Name)
	})
}

// SortedTags returns the tag names of a group in tag-aware natural order.
func SortedTags[V any](tags map[string]V) []string {
	names := make([]string, 0, len(tags))
	for tag := range tags {
		names = append(names, tag)
	}
	sort.Slice(names, func(i, j int) bool {
		return TagKey(names[i]) < TagKey(names[j])
	})
	return names
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
