package cvparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEducationTwoEntries(t *testing.T) {
	lines := []string{
		"Education",
		"BSc (Hons) Computer Science 2018 - 2022",
		"University of Colombo",
		"MSc Advanced Computer Science",
		"University of Manchester",
	}
	res := buildEducation(lines, segment(lines))

	require.Len(t, res.Education, 2)
	assert.Equal(t, "University of Colombo", res.Education[0].Institution)
	assert.Equal(t, "2022", res.Education[0].GraduationYear)
	assert.Equal(t, "University of Manchester", res.Education[1].Institution)
	assert.Equal(t, LevelBachelors, res.Level)
}

func TestBuildEducationLevelFromFirstEntry(t *testing.T) {
	tests := []struct {
		name   string
		degree string
		want   EducationLevel
	}{
		{"phd", "PhD in Machine Learning", LevelPhD},
		{"masters", "MSc Data Science", LevelMasters},
		{"bachelors", "Bachelor of Engineering", LevelBachelors},
		{"diploma", "Higher National Diploma in Computing", LevelDiploma},
		{"certificate", "Certificate in Web Development", LevelCertificate},
		{"unknown", "Something Else Entirely", LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyEducationLevel(tt.degree))
		})
	}
}

func TestQualificationDashVariants(t *testing.T) {
	// All three dash variants split a qualification line identically.
	for _, dash := range []string{"-", "–", "—"} {
		line := "G.C.E. Advanced Level " + dash + " Royal College"
		entry := qualificationFromLine(line)
		assert.Equal(t, "G.C.E. Advanced Level", entry.Degree, "dash %q", dash)
		assert.Equal(t, "Royal College", entry.Institution, "dash %q", dash)
	}
}

func TestQualificationHyphenatedNameNotSplit(t *testing.T) {
	// The hyphen inside "A-Level" is not a separator; only the spaced dash
	// splits the line.
	entry := qualificationFromLine("A-Level - Royal College")
	assert.Equal(t, "A-Level", entry.Degree)
	assert.Equal(t, "Royal College", entry.Institution)
}

func TestQualificationsSeparateFromDegrees(t *testing.T) {
	lines := []string{
		"Education",
		"BSc Computer Science",
		"University of Colombo",
		"G.C.E. A/L - Royal College 2017",
	}
	res := buildEducation(lines, segment(lines))

	require.Len(t, res.Education, 1)
	require.Len(t, res.Qualifications, 1)
	assert.Equal(t, "G.C.E. A/L", res.Qualifications[0].Degree)
	assert.Equal(t, "2017", res.Qualifications[0].GraduationYear)
}

func TestQualificationInstitutionDropsTrailingYear(t *testing.T) {
	entry := qualificationFromLine("G.C.E. A/L - Royal College 2017")
	assert.Equal(t, "G.C.E. A/L", entry.Degree)
	assert.Equal(t, "Royal College", entry.Institution)
	assert.Equal(t, "2017", entry.GraduationYear)
}

func TestQualificationInstitutionFromSecondarySchoolLine(t *testing.T) {
	lines := []string{
		"Education",
		"Ordinary Level",
		"Ananda High School",
	}
	res := buildEducation(lines, segment(lines))

	require.Len(t, res.Qualifications, 1)
	assert.Equal(t, "Ananda High School", res.Qualifications[0].Institution)
}

func TestEducationIgnoresWorkLeakage(t *testing.T) {
	lines := []string{
		"Education",
		"BSc Computer Science",
		"Software Engineer | Acme Ltd",
		"Developed internal tooling",
		"University of Colombo",
	}
	res := buildEducation(lines, segment(lines))

	require.Len(t, res.Education, 1)
	assert.Equal(t, "University of Colombo", res.Education[0].Institution)
}

func TestEducationFallbackWithoutSection(t *testing.T) {
	// No education header at all: the whole-text pass still finds the
	// degree and the institution on the following line.
	lines := []string{
		"Sangeeth Perera",
		"BSc Computer Science 2018 - 2022",
		"University of Colombo",
	}
	res := buildEducation(lines, segment(lines))

	require.Len(t, res.Education, 1)
	assert.Equal(t, "University of Colombo", res.Education[0].Institution)
	assert.Equal(t, "2022", res.Education[0].GraduationYear)
}

func TestDegreeFromLineGPA(t *testing.T) {
	entry := degreeFromLine("BSc Computer Science, GPA: 3.75")
	assert.Equal(t, "3.75", entry.GPA)
}

func TestMajorLineIsNotADegree(t *testing.T) {
	assert.Equal(t, lineNoise, classifyEducationLine("Major: Bachelor track mathematics"))
}
