package tagdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTagTable(t *testing.T) {
	path := writeFile(t, "tags.tsv",
		"# conformance tags\n"+
			"uvm\tUniversal Verification Methodology\thttps://example.org/uvm\n"+
			"assertions\tImmediate and concurrent assertions\n"+
			"\n")

	db, err := New(Config{TagFile: path})
	require.NoError(t, err)

	uvm := db.Lookup("uvm")
	assert.True(t, uvm.Known)
	assert.Equal(t, "Universal Verification Methodology", uvm.Description)
	assert.Equal(t, "https://example.org/uvm", uvm.URL)

	assertions := db.Lookup("assertions")
	assert.True(t, assertions.Known)
	assert.Empty(t, assertions.URL)
}

func TestLookupUnknownTag(t *testing.T) {
	path := writeFile(t, "tags.tsv", "uvm\tUVM\n")

	db, err := New(Config{TagFile: path})
	require.NoError(t, err)

	info := db.Lookup("not-in-catalog")
	assert.False(t, info.Known)
	assert.Equal(t, "not-in-catalog", info.Tag)
}

func TestMalformedTagTableIsFatal(t *testing.T) {
	path := writeFile(t, "tags.tsv", "uvm\n")

	_, err := New(Config{TagFile: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestMissingTagTableIsFatal(t *testing.T) {
	_, err := New(Config{TagFile: filepath.Join(t.TempDir(), "absent.tsv")})
	require.Error(t, err)
}

func TestTagFileRequired(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestMetaTagExpansion(t *testing.T) {
	tags := writeFile(t, "tags.tsv", "uvm\tUVM\nrandomization\tConstrained randomization\n")
	meta := writeFile(t, "meta.tsv", "verification\tuvm randomization assertions\n")

	db, err := New(Config{TagFile: tags, MetaTagFile: meta})
	require.NoError(t, err)

	expanded := db.Expand([]string{"uvm", "parsing"})
	assert.Equal(t, []string{"uvm", "parsing", "verification"}, expanded)

	// No dependency tag carried: nothing added.
	assert.Equal(t, []string{"parsing"}, db.Expand([]string{"parsing"}))

	// Meta-tag already present: not duplicated.
	assert.Equal(t, []string{"verification", "uvm"}, db.Expand([]string{"verification", "uvm"}))
}

func TestMalformedMetaTagTableIsFatal(t *testing.T) {
	tags := writeFile(t, "tags.tsv", "uvm\tUVM\n")
	meta := writeFile(t, "meta.tsv", "verification\t \n")

	_, err := New(Config{TagFile: tags, MetaTagFile: meta})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta-tag")
}
