package definitions

import "sort"

// Descriptor is the name and description attached to one code in one
// version. Description is only populated for sub-industries.
type Descriptor struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasDescription reports whether the source data carried a description.
func (d Descriptor) HasDescription() bool {
	return d.Description != ""
}

// Table is the immutable code → Descriptor mapping of one version.
// A *Table is safe for concurrent use; nothing mutates it after parsing.
type Table struct {
	version string
	entries map[string]Descriptor
	sorted  []Descriptor // ordered by code
}

func newTable(version string, entries map[string]Descriptor) *Table {
	sorted := make([]Descriptor, 0, len(entries))
	for _, d := range entries {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })
	return &Table{version: version, entries: entries, sorted: sorted}
}

// Version returns the version identifier the table was built for.
func (t *Table) Version() string {
	return t.version
}

// Lookup returns the descriptor stored for code.
func (t *Table) Lookup(code string) (Descriptor, bool) {
	d, ok := t.entries[code]
	return d, ok
}

// Has reports whether code is a key of the table.
func (t *Table) Has(code string) bool {
	_, ok := t.entries[code]
	return ok
}

// Len returns the number of codes across all levels.
func (t *Table) Len() int {
	return len(t.entries)
}

// Codes returns every code in ascending order.
func (t *Table) Codes() []string {
	codes := make([]string, len(t.sorted))
	for i, d := range t.sorted {
		codes[i] = d.Code
	}
	return codes
}

// Entries returns a copy of every descriptor, ordered by code.
func (t *Table) Entries() []Descriptor {
	out := make([]Descriptor, len(t.sorted))
	copy(out, t.sorted)
	return out
}

// EntriesAtLevel returns the descriptors of one hierarchy level, ordered by
// code. Out-of-range levels yield an empty slice.
func (t *Table) EntriesAtLevel(level int) []Descriptor {
	out := make([]Descriptor, 0)
	if LevelName(level) == "" {
		return out
	}
	for _, d := range t.sorted {
		if len(d.Code) == 2*level {
			out = append(out, d)
		}
	}
	return out
}

// CountByLevel returns the number of entries at each level, indexed 1..4.
func (t *Table) CountByLevel() [MaxLevel + 1]int {
	var counts [MaxLevel + 1]int
	for code := range t.entries {
		counts[LevelOf(code)]++
	}
	return counts
}
