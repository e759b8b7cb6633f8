package definitions

// Hierarchy levels. A code of length 2*n identifies an entry at level n.
const (
	LevelSector        = 1
	LevelIndustryGroup = 2
	LevelIndustry      = 3
	LevelSubIndustry   = 4

	MaxLevel = LevelSubIndustry
)

var levelNames = [...]string{
	LevelSector:        "Sector",
	LevelIndustryGroup: "Industry Group",
	LevelIndustry:      "Industry",
	LevelSubIndustry:   "Sub-Industry",
}

// LevelName returns the display name of a hierarchy level, or "" when level
// is out of range.
func LevelName(level int) string {
	if level < LevelSector || level > MaxLevel {
		return ""
	}
	return levelNames[level]
}

// LevelOf returns the hierarchy level implied by the length of code, or 0 if
// the length is not one of 2, 4, 6 or 8. Table membership is not checked.
func LevelOf(code string) int {
	n := len(code)
	if n < 2 || n > 2*MaxLevel || n%2 != 0 {
		return 0
	}
	return n / 2
}

// ParentCode returns the code one level up, or "" for sectors and malformed
// codes.
func ParentCode(code string) string {
	if LevelOf(code) <= LevelSector {
		return ""
	}
	return code[:len(code)-2]
}
