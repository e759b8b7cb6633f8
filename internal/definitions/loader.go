package definitions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gics/internal/logging"

	"golang.org/x/sync/errgroup"
)

// rawEntry is one record of a persisted dataset.
type rawEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type tableCache struct {
	once  sync.Once
	table *Table
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*tableCache)
)

// Load returns the shared table for version. The embedded dataset is parsed
// once per process; later calls return the same *Table.
//
// An unknown version yields *UnsupportedVersionError.
func Load(version string) (*Table, error) {
	path, ok := knownVersions[version]
	if !ok {
		return nil, &UnsupportedVersionError{Requested: version, Known: KnownVersions()}
	}

	cacheMu.Lock()
	entry, ok := cache[version]
	if !ok {
		entry = &tableCache{}
		cache[version] = entry
	}
	cacheMu.Unlock()

	entry.once.Do(func() {
		entry.table, entry.err = loadEmbedded(version, path)
	})
	return entry.table, entry.err
}

// MustLoad is Load for versions known at compile time. It panics on error.
func MustLoad(version string) *Table {
	t, err := Load(version)
	if err != nil {
		panic(err)
	}
	return t
}

func loadEmbedded(version, path string) (*Table, error) {
	log := logging.Get(logging.CategoryDefinitions)

	f, err := dataFS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset for %s: %w", version, err)
	}
	defer f.Close()

	table, err := ParseTable(version, f)
	if err != nil {
		log.Errorw("failed to parse embedded dataset", "version", version, "error", err)
		return nil, err
	}
	log.Debugw("definition table loaded", "version", version, "entries", table.Len())
	return table, nil
}

// LoadAll loads every known version concurrently and returns them keyed by
// version identifier.
func LoadAll(ctx context.Context) (map[string]*Table, error) {
	versions := KnownVersions()
	tables := make([]*Table, len(versions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(versions))
	for i, v := range versions {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Load(v)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*Table, len(versions))
	for i, v := range versions {
		out[v] = tables[i]
	}
	return out, nil
}

// ParseTable reads a persisted dataset of the form
//
//	{"10": {"name": "Energy"}, "10101010": {"name": "...", "description": "..."}}
//
// and validates it: every key is a 2, 4, 6 or 8 digit code, every entry has a
// name, only sub-industries carry a description, and every code's parent is
// present.
func ParseTable(version string, r io.Reader) (*Table, error) {
	var raw map[string]rawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &DataError{Version: version, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if len(raw) == 0 {
		return nil, &DataError{Version: version, Reason: "dataset is empty"}
	}

	entries := make(map[string]Descriptor, len(raw))
	for code, e := range raw {
		if err := validateEntry(version, code, e); err != nil {
			return nil, err
		}
		entries[code] = Descriptor{Code: code, Name: e.Name, Description: e.Description}
	}

	for code := range entries {
		if parent := ParentCode(code); parent != "" {
			if _, ok := entries[parent]; !ok {
				return nil, &DataError{Version: version, Code: code, Reason: fmt.Sprintf("parent %q is missing", parent)}
			}
		}
	}

	return newTable(version, entries), nil
}

func validateEntry(version, code string, e rawEntry) error {
	level := LevelOf(code)
	if level == 0 {
		return &DataError{Version: version, Code: code, Reason: "code length must be 2, 4, 6 or 8"}
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return &DataError{Version: version, Code: code, Reason: "code must be numeric"}
		}
	}
	if e.Name == "" {
		return &DataError{Version: version, Code: code, Reason: "name is empty"}
	}
	if e.Description != "" && level != LevelSubIndustry {
		return &DataError{Version: version, Code: code, Reason: "only sub-industries carry a description"}
	}
	return nil
}
