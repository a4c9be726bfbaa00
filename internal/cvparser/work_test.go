package cvparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestBuildWorkBlockPattern(t *testing.T) {
	lines := []string{
		"Work Experience",
		"Acme Solutions Ltd - Colombo",
		"Worked as Software Engineer (January 2020 - March 2022)",
		"• Built internal tools",
		"• Automated deployment pipelines",
	}
	entries := buildWork(lines, segment(lines), testClock)

	require.Len(t, entries, 1)
	assert.Equal(t, "Acme Solutions Ltd", entries[0].Company)
	assert.Equal(t, "Software Engineer", entries[0].Position)
	assert.Equal(t, "2020-01", entries[0].StartDate)
	assert.Equal(t, "2022-03", entries[0].EndDate)
	assert.Equal(t, "Built internal tools Automated deployment pipelines", entries[0].Description)
}

func TestBuildWorkBlockPatternDateOnNextLine(t *testing.T) {
	lines := []string{
		"Employment",
		"Globex Corporation",
		"Worked as Data Analyst",
		"(June 2021 - Present)",
	}
	entries := buildWork(lines, segment(lines), testClock)

	require.Len(t, entries, 1)
	assert.Equal(t, "Globex Corporation", entries[0].Company)
	assert.Equal(t, "Data Analyst", entries[0].Position)
	assert.Equal(t, "2021-06", entries[0].StartDate)
	assert.Equal(t, "2025-03-15", entries[0].EndDate)
}

func TestBuildWorkTitleAtCompanyWithoutSection(t *testing.T) {
	// No work section at all: the whole-text fallback still catches the
	// "Position at Company (range)" shape, and the open end resolves to
	// the current date.
	lines := []string{"Senior Developer at Acme (2020 - Present)"}
	entries := buildWork(lines, segment(lines), testClock)

	require.Len(t, entries, 1)
	assert.Equal(t, "Senior Developer", entries[0].Position)
	assert.Equal(t, "Acme", entries[0].Company)
	assert.Equal(t, "2020", entries[0].StartDate)
	assert.Equal(t, "2025-03-15", entries[0].EndDate)
}

func TestBuildWorkSingleLinePattern(t *testing.T) {
	lines := []string{
		"Experience",
		"Research Assistant June 2021 - August 2022",
		"University of Colombo",
	}
	entries := buildWork(lines, segment(lines), testClock)

	require.Len(t, entries, 1)
	assert.Equal(t, "Research Assistant", entries[0].Position)
	assert.Equal(t, "University of Colombo", entries[0].Company)
	assert.Equal(t, "2021-06", entries[0].StartDate)
	assert.Equal(t, "2022-08", entries[0].EndDate)
}

func TestBuildWorkPipePattern(t *testing.T) {
	lines := []string{
		"Work Experience",
		"Backend Developer | March 2019 - May 2021",
		"Initech (Pvt) Ltd",
	}
	entries := buildWork(lines, segment(lines), testClock)

	require.Len(t, entries, 1)
	assert.Equal(t, "Backend Developer", entries[0].Position)
	assert.Equal(t, "Initech (Pvt) Ltd", entries[0].Company)
	assert.Equal(t, "2019-03", entries[0].StartDate)
	assert.Equal(t, "2021-05", entries[0].EndDate)
}

func TestBuildWorkStopsAtNextSectionHeader(t *testing.T) {
	lines := []string{
		"Experience",
		"Engineer at Acme (2020 - 2021)",
		"Education",
		"Lecturer at Globex (2015 - 2018)",
	}
	entries := buildWork(lines, segment(lines), testClock)

	// The education section's content is not scanned for work entries.
	require.Len(t, entries, 1)
	assert.Equal(t, "Engineer", entries[0].Position)
}

func TestBuildWorkRejectsEntriesWithoutDates(t *testing.T) {
	lines := []string{
		"Work Experience",
		"Software Engineer at Acme (no dates here)",
	}
	entries := buildWork(lines, segment(lines), testClock)
	assert.Empty(t, entries)
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start string
		end   string
	}{
		{"month range", "January 2020 - March 2022", "2020-01", "2022-03"},
		{"year range", "2018 - 2022", "2018", "2022"},
		{"open ended", "June 2021 - Present", "2021-06", "2025-03-15"},
		{"to separator", "2019 to 2021", "2019", "2021"},
		{"single year", "2025 (expected)", "2025", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseDateRange(tt.text)
			assert.Equal(t, tt.start, r.startDateString())
			assert.Equal(t, tt.end, r.endDateString(testClock))
		})
	}
}
