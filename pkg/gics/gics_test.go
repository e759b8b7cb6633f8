package gics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, code string) *GICS {
	t.Helper()
	g, err := New(code)
	require.NoError(t, err)
	return g
}

func mustNewVersion(t *testing.T, code, version string) *GICS {
	t.Helper()
	g, err := NewWithVersion(code, version)
	require.NoError(t, err)
	return g
}

func TestUnsupportedVersion(t *testing.T) {
	for _, code := range []string{"10", ""} {
		g, err := NewWithVersion(code, "blabla")
		require.Error(t, err)
		assert.Nil(t, g)

		var uv *UnsupportedVersionError
		require.True(t, errors.As(err, &uv))
		assert.Equal(t, "blabla", uv.Requested)
		assert.Equal(t, Versions(), uv.Known)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	}
}

func TestDefaultsToLatestVersion(t *testing.T) {
	g := mustNew(t, "60")
	assert.Equal(t, DefaultVersion, g.Version())

	sector, ok := g.Sector()
	require.True(t, ok)
	assert.Equal(t, "Real Estate", sector.Name)
}

func TestValidity(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"10", true},
		{"1010", true},
		{"101010", true},
		{"10101010", true},
		{"9999", false},
		{"123", false},
		{"1", false},
		{"", false},
		{"invalid", false},
		{"1010101010", false},
		{"45101010", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			g := mustNew(t, tt.code)
			assert.Equal(t, tt.valid, g.IsValid())
			if tt.valid {
				assert.Equal(t, tt.code, g.Code())
			} else {
				assert.Empty(t, g.Code())
				assert.Zero(t, g.Depth())
			}
		})
	}
}

func TestInvalidCodeHasNoLevels(t *testing.T) {
	for _, code := range []string{"9999", "123"} {
		g := mustNew(t, code)
		for n := 1; n <= 4; n++ {
			_, ok := g.Level(n)
			assert.False(t, ok, "level %d of %q", n, code)
		}
		_, ok := g.Sector()
		assert.False(t, ok)
		_, ok = g.SubIndustry()
		assert.False(t, ok)
	}
}

func TestLevelsFollowCodeLength(t *testing.T) {
	tests := []struct {
		code    string
		present [4]bool
	}{
		{"10", [4]bool{true, false, false, false}},
		{"1010", [4]bool{true, true, false, false}},
		{"101010", [4]bool{true, true, true, false}},
		{"10101010", [4]bool{true, true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			g := mustNew(t, tt.code)
			for i, want := range tt.present {
				_, ok := g.Level(i + 1)
				assert.Equal(t, want, ok, "level %d", i+1)
			}
			assert.Equal(t, len(tt.code)/2, g.Depth())
		})
	}
}

func TestLevelOutOfRange(t *testing.T) {
	g := mustNew(t, "10101010")
	for _, n := range []int{-1, 0, 5, 100} {
		_, ok := g.Level(n)
		assert.False(t, ok, "level %d", n)
	}
}

func TestLevelCodesAreTruncatedPrefixes(t *testing.T) {
	g := mustNew(t, "10101010")

	want := []string{"10", "1010", "101010", "10101010"}
	for i, code := range want {
		d, ok := g.Level(i + 1)
		require.True(t, ok)
		assert.Equal(t, code, d.Code)
	}

	sub, ok := g.SubIndustry()
	require.True(t, ok)
	assert.NotEmpty(t, sub.Description)

	sector, _ := g.Sector()
	assert.Empty(t, sector.Description)
}

func TestNamedAccessorsMatchLevel(t *testing.T) {
	g := mustNew(t, "10101010")
	accessors := []func() (Descriptor, bool){g.Sector, g.IndustryGroup, g.Industry, g.SubIndustry}
	for i, accessor := range accessors {
		got, gotOK := accessor()
		want, wantOK := g.Level(i + 1)
		assert.Equal(t, wantOK, gotOK)
		assert.Equal(t, want, got)
	}
}

func TestOlderVersions(t *testing.T) {
	old := mustNewVersion(t, "4040", "20140228")
	sector, ok := old.Sector()
	require.True(t, ok)
	assert.Equal(t, "Financials", sector.Name)
	group, ok := old.IndustryGroup()
	require.True(t, ok)
	assert.Equal(t, "Real Estate", group.Name)

	assert.False(t, mustNewVersion(t, "4040", "20160901").IsValid())
}

func TestRenumberedCodes(t *testing.T) {
	assert.False(t, mustNew(t, "45101010").IsValid())

	g := mustNew(t, "50203010")
	require.True(t, g.IsValid())
	sub, ok := g.SubIndustry()
	require.True(t, ok)
	assert.Equal(t, "Interactive Media & Services", sub.Name)
}

func TestChildren(t *testing.T) {
	tests := []struct {
		code      string
		count     int
		childSize int
	}{
		{"", 11, 2},
		{"invalid", 11, 2},
		{"10", 1, 4},
		{"1010", 2, 6},
		{"101010", 2, 8},
		{"10101010", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			children := mustNew(t, tt.code).Children()
			require.NotNil(t, children)
			require.Len(t, children, tt.count)
			for _, c := range children {
				assert.Len(t, c.Code, tt.childSize)
			}
		})
	}
}

func TestChildrenOfEmptyFollowBoundVersion(t *testing.T) {
	children := mustNewVersion(t, "", "20140228").Children()
	assert.Len(t, children, 10)
	for _, c := range children {
		assert.NotEqual(t, "60", c.Code)
	}
}

func TestChildrenAreOrderedAndCarryDescriptions(t *testing.T) {
	children := mustNew(t, "101020").Children()
	require.NotEmpty(t, children)
	for i, c := range children {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Description)
		if i > 0 {
			assert.Less(t, children[i-1].Code, c.Code)
		}
	}
}

func TestIsSame(t *testing.T) {
	a, b := mustNew(t, "1010"), mustNew(t, "1010")
	assert.True(t, a.IsSame(b))
	assert.True(t, b.IsSame(a))

	c := mustNew(t, "101010")
	assert.False(t, a.IsSame(c))
	assert.False(t, c.IsSame(a))

	assert.False(t, mustNew(t, "invalid").IsSame(mustNew(t, "10")))
	assert.False(t, mustNew(t, "10").IsSame(mustNew(t, "invalid")))
	assert.True(t, mustNew(t, "invalid").IsSame(mustNew(t, "invalid")))
	assert.True(t, mustNew(t, "bogus").IsSame(mustNew(t, "")))

	assert.False(t, a.IsSame(nil))
}

func TestContains(t *testing.T) {
	g := func(code string) *GICS { return mustNew(t, code) }

	assert.True(t, g("10").Contains(g("10101010")))
	assert.True(t, g("10").Contains(g("101010")))
	assert.True(t, g("10").Contains(g("1010")))
	assert.False(t, g("10").Contains(g("10")))
	assert.False(t, g("1010").Contains(g("10")))
	assert.False(t, g("invalid").Contains(g("10")))
	assert.False(t, g("10").Contains(g("invalid")))
	assert.False(t, g("invalid").Contains(g("invalid")))
}

func TestContainsImmediate(t *testing.T) {
	g := func(code string) *GICS { return mustNew(t, code) }

	assert.False(t, g("10").ContainsImmediate(g("10101010")))
	assert.False(t, g("10").ContainsImmediate(g("101010")))
	assert.True(t, g("10").ContainsImmediate(g("1010")))
	assert.False(t, g("10").ContainsImmediate(g("10")))
	assert.False(t, g("1010").ContainsImmediate(g("10")))
	assert.False(t, g("invalid").ContainsImmediate(g("10")))
	assert.False(t, g("10").ContainsImmediate(g("invalid")))
	assert.False(t, g("invalid").ContainsImmediate(g("invalid")))
}

func TestIsWithin(t *testing.T) {
	g := func(code string) *GICS { return mustNew(t, code) }

	assert.True(t, g("10101010").IsWithin(g("10")))
	assert.True(t, g("101010").IsWithin(g("10")))
	assert.True(t, g("101010").IsWithin(g("1010")))
	assert.True(t, g("1010").IsWithin(g("10")))
	assert.False(t, g("10").IsWithin(g("10")))
	assert.False(t, g("1010").IsWithin(g("1010")))
	assert.False(t, g("15").IsWithin(g("10")))
	assert.False(t, g("invalid").IsWithin(g("10")))
	assert.False(t, g("10").IsWithin(g("invalid")))
	assert.False(t, g("invalid").IsWithin(g("invalid")))
}

func TestIsImmediateWithin(t *testing.T) {
	g := func(code string) *GICS { return mustNew(t, code) }

	assert.False(t, g("10101010").IsImmediateWithin(g("10")))
	assert.False(t, g("101010").IsImmediateWithin(g("10")))
	assert.True(t, g("101010").IsImmediateWithin(g("1010")))
	assert.True(t, g("1010").IsImmediateWithin(g("10")))
	assert.False(t, g("10").IsImmediateWithin(g("10")))
	assert.False(t, g("1010").IsImmediateWithin(g("1010")))
	assert.False(t, g("invalid").IsImmediateWithin(g("10")))
	assert.False(t, g("10").IsImmediateWithin(g("invalid")))
	assert.False(t, g("invalid").IsImmediateWithin(g("invalid")))
}

func TestParentAndPath(t *testing.T) {
	g := mustNew(t, "10101020")

	parent, ok := g.Parent()
	require.True(t, ok)
	assert.Equal(t, "101010", parent.Code())
	assert.Equal(t, g.Version(), parent.Version())
	assert.True(t, g.IsImmediateWithin(parent))

	path := g.Path()
	require.Len(t, path, 4)
	assert.Equal(t, "Energy", path[0].Name)
	assert.Equal(t, "Oil & Gas Equipment & Services", path[3].Name)

	_, ok = mustNew(t, "10").Parent()
	assert.False(t, ok)
	_, ok = mustNew(t, "bogus").Parent()
	assert.False(t, ok)
	assert.Empty(t, mustNew(t, "bogus").Path())
}

func TestString(t *testing.T) {
	assert.Equal(t, "60 Real Estate", mustNew(t, "60").String())
	assert.Equal(t, "<invalid>", mustNew(t, "99").String())
}

func TestNilValue(t *testing.T) {
	var g *GICS
	assert.False(t, g.IsValid())
	assert.Empty(t, g.Code())
	assert.Empty(t, g.Version())
	assert.Nil(t, g.Definitions())
	assert.Empty(t, g.Children())
	assert.Empty(t, g.Path())
	_, ok := g.Level(1)
	assert.False(t, ok)
	assert.False(t, g.IsSame(nil))
	assert.False(t, g.IsWithin(mustNew(t, "10")))
	assert.False(t, mustNew(t, "10").Contains(g))
}

func TestNilNeverSatisfiesPredicates(t *testing.T) {
	var g *GICS
	invalid := mustNew(t, "9999")
	require.True(t, invalid.IsSame(mustNew(t, "abc")))

	for _, other := range []*GICS{nil, invalid, mustNew(t, "10")} {
		assert.False(t, g.IsSame(other))
		assert.False(t, g.IsWithin(other))
		assert.False(t, g.IsImmediateWithin(other))
		assert.False(t, g.Contains(other))
		assert.False(t, g.ContainsImmediate(other))
		if other != nil {
			assert.False(t, other.IsSame(g))
		}
	}
}

func TestDefinitionsExposesBoundTable(t *testing.T) {
	g := mustNewVersion(t, "", "20180929")
	table := g.Definitions()
	require.NotNil(t, table)
	assert.Equal(t, "20180929", table.Version())
	assert.True(t, table.Has("50203010"))
}
