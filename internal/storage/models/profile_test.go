package models

import (
	"testing"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/cvparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestApplyProfile(t *testing.T) {
	student := &Student{StudentID: "stu-1"}
	profile := &cvparser.CandidateProfile{
		PersonalInfo: cvparser.PersonalInfo{
			FirstName: "Sangeeth",
			LastName:  "Perera",
			Email:     "john.perera@gmail.com",
			Phone:     "+94 77 123 4567",
			City:      "Colombo",
			Country:   "Sri Lanka",
		},
		EducationLevel: cvparser.LevelBachelors,
		Education:      []cvparser.EducationEntry{{Degree: "BSc Computer Science", Institution: "University of Colombo"}},
		Qualifications: []cvparser.QualificationEntry{},
		WorkExperience: []cvparser.WorkExperienceEntry{{Position: "Engineer", Company: "Acme"}},
		Skills:         []string{"Go", "MySQL"},
		Links:          cvparser.LinkSet{GitHubURL: "https://github.com/sangeeth"},
	}

	require.NoError(t, student.ApplyProfile(profile))

	assert.Equal(t, "Sangeeth", student.FirstName)
	assert.Equal(t, "Perera", student.LastName)
	assert.Equal(t, "Colombo", student.City)
	assert.Equal(t, string(cvparser.LevelBachelors), student.EducationLevel)
	assert.Equal(t, "https://github.com/sangeeth", student.GitHubURL)
	assert.Equal(t, []string{"Go", "MySQL"}, StringsFromJSON(student.Skills))
	assert.Contains(t, string(student.Education), "University of Colombo")
}

func TestApplyProfileKeepsExistingContactFields(t *testing.T) {
	student := &Student{
		StudentID: "stu-1",
		FirstName: "Entered",
		Email:     "entered@example.com",
		Phone:     "+44 20 1234 5678",
	}

	// An extraction that found no contact details must not blank out
	// what the student entered themselves.
	require.NoError(t, student.ApplyProfile(&cvparser.CandidateProfile{}))

	assert.Equal(t, "Entered", student.FirstName)
	assert.Equal(t, "entered@example.com", student.Email)
	assert.Equal(t, "+44 20 1234 5678", student.Phone)
}

func TestApplyProfileNil(t *testing.T) {
	student := &Student{StudentID: "stu-1"}
	assert.Error(t, student.ApplyProfile(nil))
}

func TestStringsFromJSON(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, StringsFromJSON(datatypes.JSON(`["a","b"]`)))
	assert.Empty(t, StringsFromJSON(nil))
	assert.Empty(t, StringsFromJSON(datatypes.JSON(`{broken`)))
}
