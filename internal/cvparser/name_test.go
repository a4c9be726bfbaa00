package cvparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		first     string
		last      string
	}{
		{"two words", "John Perera", "John", "Perera"},
		{"three words", "John de Silva", "John", "de Silva"},
		{"single word", "Madonna", "Madonna", ""},
		{"empty", "", "", ""},
		{
			// PDF spacing artifact: mostly-short tokens merge at the midpoint.
			"spacing artifact",
			"S an ge eth Per era",
			"Sange",
			"ethPerera",
		},
		{
			// Three tokens stay a normal first/last split even when short.
			"three short tokens",
			"Li An Wu",
			"Li",
			"An Wu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.candidate)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestNameFromFirstLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"plain name", []string{"Sangeeth Perera"}, "Sangeeth Perera"},
		{"document header rejected", []string{"Curriculum Vitae"}, ""},
		{"resume header rejected", []string{"Resume"}, ""},
		{"digits rejected", []string{"John Perera +94 77 123 4567"}, ""},
		{"too short", []string{"Jo"}, ""},
		{"empty input", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameFromFirstLine(tt.lines, ""))
		})
	}
}

func TestNameFromEarlyLines(t *testing.T) {
	lines := []string{
		"Curriculum Vitae",
		"john.perera@gmail.com",
		"Sangeeth Perera",
		"Software Engineer",
	}
	// Line 0 is skipped by this strategy; the first 2-6 word letters-only
	// line wins.
	assert.Equal(t, "Sangeeth Perera", nameFromEarlyLines(lines, ""))
}

func TestNameFromEarlyLinesRejectsShortLines(t *testing.T) {
	lines := []string{
		"Curriculum Vitae",
		"J P",
		"Sangeeth Perera",
	}
	// Initials-only lines stay under the early-line length floor.
	assert.Equal(t, "Sangeeth Perera", nameFromEarlyLines(lines, ""))
}

func TestResolveNameSpacingRepair(t *testing.T) {
	first, last := resolveName([]string{"S an ge eth Per era"}, "S an ge eth Per era")
	assert.Equal(t, "Sange", first)
	assert.Equal(t, "ethPerera", last)
}
