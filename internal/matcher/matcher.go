// Package matcher ranks university courses against an extracted student
// profile and the student's stated preferences.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/cvparser"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage/models"
)

// Factor weights. Scores are reported as a percentage of the total.
const (
	weightIELTS     = 25
	weightBudget    = 20
	weightField     = 25
	weightLevel     = 10
	weightStudyMode = 10
	weightLocation  = 20
	perFieldPoints  = 15
	countryPoints   = 12
	partialModePts  = 5
	nearIELTSPoints = 8
	defaultMinScore = 30
)

// Preferences are the student's stated constraints, collected alongside
// the CV. Zero values mean the corresponding factor is skipped.
type Preferences struct {
	IELTSScore         float64  `json:"ielts_score"`
	Budget             float64  `json:"budget"`
	FieldsOfInterest   []string `json:"fields_of_interest"`
	PreferredStudyMode string   `json:"preferred_study_mode"`
	PreferredLocations []string `json:"preferred_locations"`
	MinScore           int      `json:"min_score"`
}

// CourseMatch is one ranked course with its score breakdown.
type CourseMatch struct {
	Course  models.UniversityCourse `json:"course"`
	Score   int                     `json:"score"` // 0..100
	Reasons []string                `json:"reasons"`
}

// RankCourses scores every course against the profile and preferences,
// drops those under the minimum score, and returns the rest best first.
// Ties keep course-ID order so the ranking is stable.
func RankCourses(profile *cvparser.CandidateProfile, prefs Preferences, courses []models.UniversityCourse) []CourseMatch {
	minScore := prefs.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}

	matches := make([]CourseMatch, 0, len(courses))
	for _, course := range courses {
		score, reasons := scoreCourse(course, profile, prefs)
		if score < minScore {
			continue
		}
		matches = append(matches, CourseMatch{Course: course, Score: score, Reasons: reasons})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Course.ID < matches[j].Course.ID
	})
	return matches
}

// scoreCourse applies the six weighted factors and converts the sum to a
// percentage of the maximum.
func scoreCourse(course models.UniversityCourse, profile *cvparser.CandidateProfile, prefs Preferences) (int, []string) {
	score := 0
	maxScore := weightIELTS + weightBudget + weightField + weightLevel + weightStudyMode + weightLocation
	var reasons []string

	// 1. IELTS requirement.
	if prefs.IELTSScore > 0 && course.MinIELTS > 0 {
		switch diff := prefs.IELTSScore - course.MinIELTS; {
		case diff >= 1.0:
			score += weightIELTS
			reasons = append(reasons, fmt.Sprintf("IELTS %.1f exceeds requirement of %.1f", prefs.IELTSScore, course.MinIELTS))
		case diff >= 0.5:
			score += 20
			reasons = append(reasons, fmt.Sprintf("IELTS %.1f meets requirement of %.1f", prefs.IELTSScore, course.MinIELTS))
		case diff >= 0:
			score += 15
			reasons = append(reasons, fmt.Sprintf("IELTS %.1f meets minimum of %.1f", prefs.IELTSScore, course.MinIELTS))
		case diff >= -0.5:
			score += nearIELTSPoints
			reasons = append(reasons, fmt.Sprintf("IELTS %.1f slightly below %.1f (may still apply)", prefs.IELTSScore, course.MinIELTS))
		}
	}

	// 2. Budget against tuition.
	if prefs.Budget > 0 && course.TuitionPerYear > 0 {
		fee := course.TuitionPerYear
		switch {
		case fee <= prefs.Budget*0.8:
			score += weightBudget
			reasons = append(reasons, fmt.Sprintf("fee %.0f well within budget of %.0f", fee, prefs.Budget))
		case fee <= prefs.Budget*0.95:
			score += 16
			reasons = append(reasons, fmt.Sprintf("fee %.0f within budget of %.0f", fee, prefs.Budget))
		case fee <= prefs.Budget:
			score += 12
			reasons = append(reasons, fmt.Sprintf("fee %.0f fits budget of %.0f", fee, prefs.Budget))
		case fee <= prefs.Budget*1.1:
			score += 6
			reasons = append(reasons, fmt.Sprintf("fee %.0f slightly above budget (consider with scholarship)", fee))
		}
	}

	// 3. Field of interest against course name and field. When the
	// student stated no interests, the extracted skills stand in.
	interests := prefs.FieldsOfInterest
	if len(interests) == 0 && profile != nil {
		interests = profile.Skills
	}
	if len(interests) > 0 {
		haystack := strings.ToLower(course.CourseName + " " + course.FieldOfStudy)
		matchCount := 0
		var matched []string
		for _, interest := range interests {
			if interest = strings.TrimSpace(interest); interest == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToLower(interest)) {
				matchCount++
				matched = append(matched, interest)
			}
		}
		if matchCount > 0 {
			pts := matchCount * perFieldPoints
			if pts > weightField {
				pts = weightField
			}
			score += pts
			reasons = append(reasons, "matches interest in "+strings.Join(matched, ", "))
		}
	}

	// 4. Degree level from the extracted profile.
	if profile != nil && profile.EducationLevel != cvparser.LevelUnknown && course.RequiredLevel != "" {
		if strings.EqualFold(string(profile.EducationLevel), course.RequiredLevel) {
			score += weightLevel
			reasons = append(reasons, "matches degree level: "+course.RequiredLevel)
		}
	}

	// 5. Study mode.
	if prefs.PreferredStudyMode != "" && course.StudyMode != "" {
		preferred := strings.ToLower(prefs.PreferredStudyMode)
		mode := strings.ToLower(course.StudyMode)
		if preferred == mode {
			score += weightStudyMode
			reasons = append(reasons, "matches study mode: "+course.StudyMode)
		} else if strings.Contains(mode, preferred) {
			score += partialModePts
		}
	}

	// 6. Location preference. City match outranks country match.
	if len(prefs.PreferredLocations) > 0 {
		city := strings.ToLower(course.City)
		country := strings.ToLower(course.Country)
		locationPts := 0
		matchedLocation := ""
		for _, loc := range prefs.PreferredLocations {
			l := strings.ToLower(strings.TrimSpace(loc))
			if l == "" {
				continue
			}
			if city != "" && (strings.Contains(city, l) || strings.Contains(l, city)) {
				if locationPts < weightLocation {
					locationPts = weightLocation
					matchedLocation = course.City
				}
			} else if country != "" && (strings.Contains(country, l) || strings.Contains(l, country)) {
				if locationPts < countryPoints {
					locationPts = countryPoints
					matchedLocation = course.Country
				}
			}
		}
		if locationPts > 0 {
			score += locationPts
			reasons = append(reasons, "located in preferred area: "+matchedLocation)
		}
	}

	return score * 100 / maxScore, reasons
}
