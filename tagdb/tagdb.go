// Package tagdb loads the static tag reference table and the meta-tag table.
// Both files are foundational configuration: unreadable or malformed input is
// fatal to the whole run, unlike anything found inside individual logs.
package tagdb

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sw23/sv-tests/types"
)

// DB is the loaded tag catalog plus meta-tag dependency map.
type DB struct {
	tags     map[string]types.TagInfo
	metaTags map[string][]string
	// metaOrder preserves file order so Expand output is deterministic.
	metaOrder []string
	log       log.Logger
}

// Config contains tagdb configuration.
type Config struct {
	Log         log.Logger
	TagFile     string
	MetaTagFile string // optional; empty disables meta-tag expansion
}

// New loads the tag reference table and, when configured, the meta-tag table.
func New(cfg Config) (*DB, error) {
	if cfg.TagFile == "" {
		return nil, fmt.Errorf("tag reference file is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}

	db := &DB{
		tags:     make(map[string]types.TagInfo),
		metaTags: make(map[string][]string),
		log:      cfg.Log.New("component", "tagdb"),
	}

	if err := db.loadTags(cfg.TagFile); err != nil {
		return nil, fmt.Errorf("failed to load tag reference table: %w", err)
	}
	if cfg.MetaTagFile != "" {
		if err := db.loadMetaTags(cfg.MetaTagFile); err != nil {
			return nil, fmt.Errorf("failed to load meta-tag table: %w", err)
		}
	}

	db.log.Debug("Tag catalog loaded", "tags", len(db.tags), "metaTags", len(db.metaTags))
	return db, nil
}

// loadTags reads tab-separated lines `tag<TAB>description[<TAB>url]`.
// Lines starting with # are comments.
func (db *DB) loadTags(path string) error {
	return eachRow(path, func(lineno int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: want tag<TAB>description[<TAB>url], got %d fields", lineno, len(fields))
		}
		info := types.TagInfo{
			Tag:         fields[0],
			Description: fields[1],
			Known:       true,
		}
		if len(fields) > 2 {
			info.URL = fields[2]
		}
		db.tags[info.Tag] = info
		return nil
	})
}

// loadMetaTags reads the same tab-separated format, where the second column
// is a whitespace-separated list of dependency tags.
func (db *DB) loadMetaTags(path string) error {
	return eachRow(path, func(lineno int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: want meta-tag<TAB>dependency-tags", lineno)
		}
		deps := strings.Fields(fields[1])
		if len(deps) == 0 {
			return fmt.Errorf("line %d: meta-tag %q has no dependency tags", lineno, fields[0])
		}
		if _, seen := db.metaTags[fields[0]]; !seen {
			db.metaOrder = append(db.metaOrder, fields[0])
		}
		db.metaTags[fields[0]] = deps
		return nil
	})
}

func eachRow(path string, fn func(lineno int, fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineno, strings.Split(line, "\t")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Lookup returns the catalog entry for a tag. Tags missing from the
// reference table come back with Known=false; the caller decides whether
// that warrants a warning.
func (db *DB) Lookup(tag string) types.TagInfo {
	if info, ok := db.tags[tag]; ok {
		return info
	}
	return types.TagInfo{Tag: tag}
}

// Tags returns the full reference catalog.
func (db *DB) Tags() map[string]types.TagInfo {
	return db.tags
}

// Expand returns the given tags plus every meta-tag whose dependency list
// intersects them. The input order is preserved; meta-tags are appended.
func (db *DB) Expand(tags []string) []string {
	expanded := make([]string, len(tags))
	copy(expanded, tags)

	carried := make(map[string]bool, len(tags))
	for _, tag := range tags {
		carried[tag] = true
	}

	for _, meta := range db.metaOrder {
		if carried[meta] {
			continue
		}
		for _, dep := range db.metaTags[meta] {
			if carried[dep] {
				expanded = append(expanded, meta)
				break
			}
		}
	}
	return expanded
}
