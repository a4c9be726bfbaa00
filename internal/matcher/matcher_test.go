package matcher

import (
	"testing"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/cvparser"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourses() []models.UniversityCourse {
	return []models.UniversityCourse{
		{
			ID:             1,
			CourseName:     "MSc Computer Science",
			University:     "University of Manchester",
			Country:        "United Kingdom",
			City:           "Manchester",
			FieldOfStudy:   "Computer Science",
			RequiredLevel:  "Bachelors",
			MinIELTS:       6.5,
			TuitionPerYear: 18000,
			StudyMode:      "full-time",
		},
		{
			ID:             2,
			CourseName:     "MA Fine Arts",
			University:     "Arts University",
			Country:        "United Kingdom",
			City:           "London",
			FieldOfStudy:   "Fine Arts",
			RequiredLevel:  "Bachelors",
			MinIELTS:       7.0,
			TuitionPerYear: 25000,
			StudyMode:      "full-time",
		},
	}
}

func testProfile() *cvparser.CandidateProfile {
	return &cvparser.CandidateProfile{
		EducationLevel: cvparser.LevelBachelors,
		Skills:         []string{"Computer Science", "Python"},
	}
}

func TestRankCoursesOrdering(t *testing.T) {
	prefs := Preferences{
		IELTSScore:         7.5,
		Budget:             25000,
		FieldsOfInterest:   []string{"Computer Science"},
		PreferredStudyMode: "full-time",
		PreferredLocations: []string{"Manchester"},
		MinScore:           1,
	}

	matches := RankCourses(testProfile(), prefs, testCourses())
	require.NotEmpty(t, matches)
	assert.Equal(t, uint(1), matches[0].Course.ID)
	assert.NotEmpty(t, matches[0].Reasons)

	// Scores are descending.
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestRankCoursesMinScoreCutoff(t *testing.T) {
	prefs := Preferences{MinScore: 95}
	matches := RankCourses(testProfile(), prefs, testCourses())
	assert.Empty(t, matches)
}

func TestScoreCourseIELTSBands(t *testing.T) {
	course := models.UniversityCourse{CourseName: "MSc X", MinIELTS: 6.5}

	wellAbove, _ := scoreCourse(course, nil, Preferences{IELTSScore: 7.5})
	justMeets, _ := scoreCourse(course, nil, Preferences{IELTSScore: 6.5})
	slightlyBelow, _ := scoreCourse(course, nil, Preferences{IELTSScore: 6.0})
	wellBelow, _ := scoreCourse(course, nil, Preferences{IELTSScore: 4.0})

	assert.Greater(t, wellAbove, justMeets)
	assert.Greater(t, justMeets, slightlyBelow)
	assert.Greater(t, slightlyBelow, wellBelow)
	assert.Equal(t, 0, wellBelow)
}

func TestScoreCourseSkillsStandInForInterests(t *testing.T) {
	// With no stated interests the extracted skills drive the field match.
	course := models.UniversityCourse{CourseName: "BSc Software Engineering", FieldOfStudy: "Computing"}
	profile := &cvparser.CandidateProfile{Skills: []string{"Software Engineering"}}

	score, reasons := scoreCourse(course, profile, Preferences{})
	assert.Greater(t, score, 0)
	require.NotEmpty(t, reasons)
	assert.Contains(t, reasons[0], "Software Engineering")
}

func TestScoreCourseDegreeLevel(t *testing.T) {
	course := models.UniversityCourse{CourseName: "MSc X", RequiredLevel: "Bachelors"}

	with, _ := scoreCourse(course, testProfile(), Preferences{})
	without, _ := scoreCourse(course, &cvparser.CandidateProfile{}, Preferences{})
	assert.Greater(t, with, without)
}

func TestScoreCourseLocationCityBeatsCountry(t *testing.T) {
	course := models.UniversityCourse{CourseName: "MSc X", City: "Manchester", Country: "United Kingdom"}

	cityScore, _ := scoreCourse(course, nil, Preferences{PreferredLocations: []string{"Manchester"}})
	countryScore, _ := scoreCourse(course, nil, Preferences{PreferredLocations: []string{"United Kingdom"}})
	assert.Greater(t, cityScore, countryScore)
	assert.Greater(t, countryScore, 0)
}
