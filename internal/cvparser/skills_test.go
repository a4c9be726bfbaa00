package cvparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSkillsScopedToSkillsSection(t *testing.T) {
	// Python appears only in the work section and must not be matched.
	lines := []string{
		"Skills",
		"JavaScript, React, MySQL",
		"Work Experience",
		"Developed services in Python",
	}
	skills := matchSkills(lines, segment(lines))
	assert.Equal(t, []string{"JavaScript", "React", "MySQL"}, skills)
}

func TestMatchSkillsNoSection(t *testing.T) {
	lines := []string{"JavaScript everywhere but no skills header"}
	assert.Empty(t, matchSkills(lines, segment(lines)))
}

func TestMatchSkillsSymbolNames(t *testing.T) {
	lines := []string{
		"Technical Skills",
		"C++, C#, .NET and Node.js",
	}
	skills := matchSkills(lines, segment(lines))
	assert.Contains(t, skills, "C++")
	assert.Contains(t, skills, "C#")
	assert.Contains(t, skills, ".NET")
	assert.Contains(t, skills, "Node.js")
}

func TestMatchSkillsNoSubstringFalsePositives(t *testing.T) {
	lines := []string{
		"Skills",
		"JavaScript, PostgreSQL",
	}
	skills := matchSkills(lines, segment(lines))
	// "Java" inside "JavaScript" and "SQL" inside "PostgreSQL" do not fire.
	assert.NotContains(t, skills, "Java")
	assert.NotContains(t, skills, "SQL")
	assert.Contains(t, skills, "JavaScript")
	assert.Contains(t, skills, "PostgreSQL")
}

func TestMatchSkillsDeduplicates(t *testing.T) {
	lines := []string{
		"Skills",
		"Python, python, PYTHON",
	}
	skills := matchSkills(lines, segment(lines))
	assert.Equal(t, []string{"Python"}, skills)
}

func TestMatchSkillsRendersSoftSkillsTitleCased(t *testing.T) {
	lines := []string{
		"Skills",
		"problem solving, leadership",
	}
	skills := matchSkills(lines, segment(lines))
	assert.Contains(t, skills, "Problem Solving")
	assert.Contains(t, skills, "Leadership")
}

func TestHasSkillToken(t *testing.T) {
	assert.True(t, hasSkillToken("skilled in c++ and go", "C++"))
	assert.False(t, hasSkillToken("javascript", "Java"))
	assert.True(t, hasSkillToken("java and kotlin", "Java"))
	assert.False(t, hasSkillToken("postgresql", "SQL"))
}
