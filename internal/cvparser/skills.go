package cvparser

import (
	"regexp"
	"strings"
)

// skillSeparatorRe splits a skills window into tokens on the separators
// CVs actually use: commas, semicolons, pipes, bullets, dashes, newlines
// and tabs.
var skillSeparatorRe = regexp.MustCompile(`[,;|•●▪◦·\n\t]+|\s+[-–—]\s+`)

// matchSkills matches the curated vocabulary against the skills-section
// text only. Work and education text never contributes, so a language
// mentioned in a job description does not become a skill.
//
// Two passes over the window: direct vocabulary membership with word
// boundaries, then a token split whose tokens are matched exactly or by
// containment. Results are merged, de-duplicated, and rendered in
// title-cased vocabulary form, in vocabulary scan order.
func matchSkills(lines []string, sections []Section) []string {
	window := sectionText(lines, sections, SectionSkills)
	if strings.TrimSpace(window) == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(skill string) {
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, renderSkill(skill))
	}

	// Pass one: direct membership test.
	for _, skill := range skillVocabulary {
		if hasSkillToken(window, skill) {
			add(skill)
		}
	}

	// Pass two: separator split, exact or containment match per token.
	for _, token := range skillSeparatorRe.Split(window, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for _, skill := range skillVocabulary {
			if strings.EqualFold(token, skill) || hasSkillToken(token, skill) {
				add(skill)
			}
		}
	}
	return out
}

// hasSkillToken reports whether skill occurs in text delimited by
// non-alphanumeric characters. Unlike containsTerm it does not treat the
// symbol characters of the skill itself ("C++", "C#", ".NET") as
// boundaries mid-match.
func hasSkillToken(text, skill string) bool {
	lt := strings.ToLower(text)
	ls := strings.ToLower(skill)
	for from := 0; ; {
		idx := strings.Index(lt[from:], ls)
		if idx < 0 {
			return false
		}
		idx += from
		if skillBoundary(lt, idx-1) && skillBoundary(lt, idx+len(ls)) {
			return true
		}
		from = idx + 1
	}
}

func skillBoundary(s string, idx int) bool {
	if idx < 0 || idx >= len(s) {
		return true
	}
	c := s[idx]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// renderSkill keeps the vocabulary's own casing for entries that carry
// internal capitalization (JavaScript, MySQL) and title-cases plain words.
func renderSkill(skill string) string {
	if skill != strings.ToLower(skill) {
		return skill
	}
	return titleCaseWords(skill)
}
