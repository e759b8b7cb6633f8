// Package definitions holds the versioned GICS definition tables.
//
// Every supported revision of the standard ships as a static JSON dataset
// embedded in the binary. A table is parsed the first time its version is
// requested and is shared, read-only, from then on.
package definitions

import (
	"embed"
	"sort"
)

// Supported revisions of the classification standard.
const (
	Version20140228 = "20140228"
	Version20160901 = "20160901"
	Version20180929 = "20180929"
	Version20230318 = "20230318"

	// DefaultVersion is the latest revision shipped with the module.
	DefaultVersion = Version20230318
)

//go:embed data/*.json
var dataFS embed.FS

// knownVersions maps a version identifier to its embedded dataset.
var knownVersions = map[string]string{
	Version20140228: "data/20140228.json",
	Version20160901: "data/20160901.json",
	Version20180929: "data/20180929.json",
	Version20230318: "data/20230318.json",
}

// KnownVersions returns the supported version identifiers in ascending order.
func KnownVersions() []string {
	versions := make([]string, 0, len(knownVersions))
	for v := range knownVersions {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// IsKnownVersion reports whether a dataset ships for version.
func IsKnownVersion(version string) bool {
	_, ok := knownVersions[version]
	return ok
}
