package cvparser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCV = `Sangeeth Perera
john.perera@gmail.com
+94 77 123 4567
Address: Colombo, Sri Lanka
github.com/sangeeth

Education
BSc (Hons) Computer Science 2018 - 2022
University of Colombo
G.C.E. A/L - Royal College 2017

Work Experience
Acme Solutions Ltd - Colombo
Worked as Software Engineer (January 2020 - March 2022)
• Built internal tools

Skills
JavaScript, React, MySQL
`

func fixedClock() time.Time {
	return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func TestExtractFullProfile(t *testing.T) {
	result := NewExtractor(WithClock(fixedClock)).Extract(sampleCV)
	require.True(t, result.Success)
	require.NotNil(t, result.Data)
	profile := result.Data

	assert.Equal(t, "Sangeeth", profile.PersonalInfo.FirstName)
	assert.Equal(t, "Perera", profile.PersonalInfo.LastName)
	assert.Equal(t, "john.perera@gmail.com", profile.PersonalInfo.Email)
	assert.True(t, strings.HasPrefix(profile.PersonalInfo.Phone, "+94"))
	assert.Equal(t, "Sri Lanka", profile.PersonalInfo.Country)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "University of Colombo", profile.Education[0].Institution)
	assert.Equal(t, "2022", profile.Education[0].GraduationYear)
	assert.Equal(t, LevelBachelors, profile.EducationLevel)
	require.Len(t, profile.Qualifications, 1)

	require.Len(t, profile.WorkExperience, 1)
	assert.Equal(t, "Software Engineer", profile.WorkExperience[0].Position)
	assert.Equal(t, "Acme Solutions Ltd", profile.WorkExperience[0].Company)

	assert.Equal(t, []string{"JavaScript", "React", "MySQL"}, profile.Skills)
	assert.Equal(t, "https://github.com/sangeeth", profile.Links.GitHubURL)
}

func TestExtractNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"a",
		"!!!@@@###",
		strings.Repeat("x", 100000),
		strings.Repeat("Education\n", 500),
		"Worked as (",
		"( - ) | ( - )",
		"日本語のテキスト\n中文文本",
		"\x00\x01\x02",
	}
	e := NewExtractor()
	for _, input := range inputs {
		assert.NotPanics(t, func() { e.Extract(input) })
	}
}

func TestExtractEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t"} {
		result := NewExtractor().Extract(input)
		assert.False(t, result.Success)
		assert.Nil(t, result.Data)
		assert.NotEmpty(t, result.Message)
	}
}

func TestExtractIdempotent(t *testing.T) {
	e := NewExtractor(WithClock(fixedClock))
	first := e.Extract(sampleCV)
	second := e.Extract(sampleCV)
	assert.Equal(t, first, second)
}

func TestExtractArraysNeverNil(t *testing.T) {
	result := NewExtractor().Extract("just some unstructured text")
	require.True(t, result.Success)
	assert.NotNil(t, result.Data.Education)
	assert.NotNil(t, result.Data.Qualifications)
	assert.NotNil(t, result.Data.WorkExperience)
	assert.NotNil(t, result.Data.Skills)
}

func TestValidateWarnings(t *testing.T) {
	warnings := Validate(&CandidateProfile{})
	assert.Contains(t, warnings, "name could not be detected")
	assert.Contains(t, warnings, "email address missing")
	assert.Contains(t, warnings, "no skills detected")

	assert.Equal(t, []string{"no profile data"}, Validate(nil))
}

func TestValidateCompleteProfile(t *testing.T) {
	profile := &CandidateProfile{
		PersonalInfo: PersonalInfo{
			FirstName: "Sangeeth",
			LastName:  "Perera",
			Email:     "john.perera@gmail.com",
			Phone:     "+94 77 123 4567",
		},
		Education:      []EducationEntry{{Degree: "BSc Computer Science"}},
		WorkExperience: []WorkExperienceEntry{{Position: "Engineer", StartDate: "2020"}},
		Skills:         []string{"Go"},
	}
	assert.Empty(t, Validate(profile))
}
