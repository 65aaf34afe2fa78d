package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCEFRLevelIndexOrdering(t *testing.T) {
	for i := 1; i < len(CEFRLevels); i++ {
		assert.Greater(t, CEFRLevels[i].Index(), CEFRLevels[i-1].Index())
	}
	assert.Equal(t, -1, CEFRLevel("Z9").Index())
}

func TestParseCEFRLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   CEFRLevel
		wantOK bool
	}{
		{"A1", LevelA1, true},
		{"b2", LevelB2, true},
		{"C2", LevelC2, true},
		{"", "", false},
		{"D1", "", false},
		{"A10", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCEFRLevel(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input=%q", tt.in)
		assert.Equal(t, tt.want, got, "input=%q", tt.in)
	}
}
