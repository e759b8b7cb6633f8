// Package gics resolves Global Industry Classification Standard codes.
//
// A GICS value binds one code string to one revision of the standard. Codes
// are 2 (Sector), 4 (Industry Group), 6 (Industry) or 8 (Sub-Industry)
// digits long. Construction only fails for an unsupported version; a
// malformed or unknown code produces an invalid value that can still be
// queried:
//
//	g, err := gics.New("45103010")
//	if err != nil {
//		return err // unsupported version
//	}
//	if sector, ok := g.Sector(); ok {
//		fmt.Println(sector.Name) // Information Technology
//	}
//
// An empty code yields an invalid value whose Children are the sectors of the
// bound version, which makes it a convenient root for walking the hierarchy.
//
// Values are immutable and safe for concurrent use.
package gics

import (
	"fmt"
	"strings"

	"gics/internal/definitions"
)

// Descriptor is the name and description of one code at one level.
type Descriptor = definitions.Descriptor

// UnsupportedVersionError is returned by NewWithVersion for unknown versions.
type UnsupportedVersionError = definitions.UnsupportedVersionError

// ErrUnsupportedVersion matches any UnsupportedVersionError with errors.Is.
var ErrUnsupportedVersion = definitions.ErrUnsupportedVersion

// DefaultVersion is the revision used by New.
const DefaultVersion = definitions.DefaultVersion

// Versions returns the supported revisions in ascending order.
func Versions() []string {
	return definitions.KnownVersions()
}

// GICS is a code resolved against one version of the definition table.
// A nil *GICS reads as an invalid code with no table through the accessors,
// but it never satisfies a predicate: IsSame with a nil side is false.
type GICS struct {
	table  *definitions.Table
	code   string
	valid  bool
	levels [definitions.MaxLevel]Descriptor // levels[:len(code)/2] are set when valid
}

// New resolves code against DefaultVersion.
func New(code string) (*GICS, error) {
	return NewWithVersion(code, DefaultVersion)
}

// NewWithVersion resolves code against the given version. The version is
// checked before the code, so an unknown version fails even for "".
func NewWithVersion(code, version string) (*GICS, error) {
	table, err := definitions.Load(version)
	if err != nil {
		return nil, err
	}
	return resolve(table, code), nil
}

// resolve never fails: anything that does not name a table entry yields an
// invalid value with an empty code.
func resolve(table *definitions.Table, code string) *GICS {
	g := &GICS{table: table}

	depth := definitions.LevelOf(code)
	if depth == 0 || !table.Has(code) {
		return g
	}

	for i := 0; i < depth; i++ {
		prefix := code[:2*(i+1)]
		d, ok := table.Lookup(prefix)
		if !ok {
			return g
		}
		d.Code = prefix
		g.levels[i] = d
	}

	g.code = code
	g.valid = true
	return g
}

// IsValid reports whether the code names an entry of the bound version.
func (g *GICS) IsValid() bool {
	return g != nil && g.valid
}

// Code returns the resolved code, or "" when invalid.
func (g *GICS) Code() string {
	if !g.IsValid() {
		return ""
	}
	return g.code
}

// Version returns the identifier of the bound definition table.
func (g *GICS) Version() string {
	if g == nil || g.table == nil {
		return ""
	}
	return g.table.Version()
}

// Definitions returns the bound definition table.
func (g *GICS) Definitions() *definitions.Table {
	if g == nil {
		return nil
	}
	return g.table
}

// Depth returns the level of the code (1..4), or 0 when invalid.
func (g *GICS) Depth() int {
	if !g.IsValid() {
		return 0
	}
	return len(g.code) / 2
}

// Level returns the descriptor of level n (1 Sector .. 4 Sub-Industry). The
// returned Code is the prefix of this code at that level. ok is false when n
// is out of range, the value is invalid, or the code does not reach level n.
func (g *GICS) Level(n int) (Descriptor, bool) {
	if n < definitions.LevelSector || n > g.Depth() {
		return Descriptor{}, false
	}
	return g.levels[n-1], true
}

// Sector is Level(1).
func (g *GICS) Sector() (Descriptor, bool) {
	return g.Level(definitions.LevelSector)
}

// IndustryGroup is Level(2).
func (g *GICS) IndustryGroup() (Descriptor, bool) {
	return g.Level(definitions.LevelIndustryGroup)
}

// Industry is Level(3).
func (g *GICS) Industry() (Descriptor, bool) {
	return g.Level(definitions.LevelIndustry)
}

// SubIndustry is Level(4).
func (g *GICS) SubIndustry() (Descriptor, bool) {
	return g.Level(definitions.LevelSubIndustry)
}

// Path returns the descriptors of every level the code reaches, outermost
// first. It is empty for an invalid code.
func (g *GICS) Path() []Descriptor {
	depth := g.Depth()
	path := make([]Descriptor, depth)
	if depth > 0 {
		copy(path, g.levels[:depth])
	}
	return path
}

// Parent returns the code one level up, bound to the same version. Sectors
// and invalid codes have no parent.
func (g *GICS) Parent() (*GICS, bool) {
	if g.Depth() <= definitions.LevelSector {
		return nil, false
	}
	return resolve(g.table, definitions.ParentCode(g.code)), true
}

// Children returns the entries one level below this code, ordered by code.
// An invalid or empty value returns every sector of the bound version; a
// sub-industry returns an empty slice.
func (g *GICS) Children() []Descriptor {
	children := make([]Descriptor, 0)
	if g == nil || g.table == nil {
		return children
	}

	prefix, want := "", 2
	if g.valid {
		prefix, want = g.code, len(g.code)+2
	}
	for _, d := range g.table.Entries() {
		if len(d.Code) == want && strings.HasPrefix(d.Code, prefix) {
			children = append(children, d)
		}
	}
	return children
}

// IsSame reports whether both values are invalid, or both are valid with the
// same code. Versions are not compared.
func (g *GICS) IsSame(other *GICS) bool {
	if g == nil || other == nil {
		return false
	}
	if g.valid != other.valid {
		return false
	}
	return !g.valid || g.code == other.code
}

// IsWithin reports whether this code is a strict descendant of other at any
// depth, e.g. 101010 is within 10. A code is never within itself.
func (g *GICS) IsWithin(other *GICS) bool {
	return g.IsValid() && other.IsValid() &&
		g.code != other.code &&
		strings.HasPrefix(g.code, other.code)
}

// IsImmediateWithin reports whether this code is a child of other exactly one
// level down, e.g. 1010 is immediately within 10 but 101010 is not.
func (g *GICS) IsImmediateWithin(other *GICS) bool {
	return g.IsWithin(other) && len(g.code) == len(other.code)+2
}

// Contains reports whether other is within this code.
func (g *GICS) Contains(other *GICS) bool {
	return other.IsWithin(g)
}

// ContainsImmediate reports whether other is immediately within this code.
func (g *GICS) ContainsImmediate(other *GICS) bool {
	return other.IsImmediateWithin(g)
}

func (g *GICS) String() string {
	if !g.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%s %s", g.code, g.levels[g.Depth()-1].Name)
}
