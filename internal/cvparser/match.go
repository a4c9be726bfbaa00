package cvparser

import (
	"strings"
	"unicode"
)

// containsTerm reports whether term occurs in text with word-boundary
// safety: the characters adjacent to the match may not be letters or
// digits. Both arguments are compared case-insensitively. Terms containing
// punctuation ("b.sc", "o/l", "ci/cd") are matched the same way, so "ba"
// does not fire inside "background" while "m.sc" still matches "M.Sc.".
func containsTerm(text, term string) bool {
	lt := strings.ToLower(text)
	t := strings.ToLower(term)
	for from := 0; ; {
		idx := strings.Index(lt[from:], t)
		if idx < 0 {
			return false
		}
		idx += from
		if boundaryBefore(lt, idx) && boundaryAfter(lt, idx+len(t)) {
			return true
		}
		from = idx + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := rune(s[idx-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	r := rune(s[idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// containsAnyTerm reports whether any of terms matches text.
func containsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if containsTerm(text, t) {
			return true
		}
	}
	return false
}

// startsWithImperative reports whether the line opens with a
// job-responsibility verb.
func startsWithImperative(line string) bool {
	first := strings.ToLower(firstWord(stripBullet(line)))
	for _, v := range imperativeVerbs {
		if first == v {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// stripBullet removes one leading bullet glyph and its surrounding space.
func stripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
}

// titleCaseWords renders s with every word capitalized, the form used for
// matched skills.
func titleCaseWords(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
