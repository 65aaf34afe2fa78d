package model

// CEFRLevel is one of the six ordered proficiency tiers used to gate
// content and report progress. Comparisons must go through Index, never
// through string comparison.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// CEFRLevels is the canonical ordering, lowest first.
var CEFRLevels = []CEFRLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// Index returns the position of the level in the canonical ordering, or -1
// for an unknown value.
func (l CEFRLevel) Index() int {
	for i, level := range CEFRLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the six known levels.
func (l CEFRLevel) Valid() bool {
	return l.Index() >= 0
}

// ParseCEFRLevel normalizes a string like "b2" into a CEFRLevel.
func ParseCEFRLevel(s string) (CEFRLevel, bool) {
	for _, level := range CEFRLevels {
		if string(level) == s || string(level) == normalizeLevel(s) {
			return level, true
		}
	}
	return "", false
}

func normalizeLevel(s string) string {
	if len(s) != 2 {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
