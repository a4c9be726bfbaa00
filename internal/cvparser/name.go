package cvparser

import (
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

var (
	nameCharsRe      = regexp.MustCompile(`^[A-Za-z\s\-.']+$`)
	earlyNameLineRe  = regexp.MustCompile(`^[A-Za-z\s\-.]+$`)
	nerTextCharLimit = 4000
)

// nameStrategy is one alternative way to find the candidate's name. The
// resolver evaluates the ordered chain and the first non-empty result wins.
type nameStrategy func(lines []string, text string) string

var nameStrategies = []nameStrategy{
	nameFromFirstLine,
	nameFromEntities,
	nameFromEarlyLines,
}

// resolveName runs the strategy chain and splits the winning candidate
// into first/last name, repairing PDF spacing artifacts on the way.
func resolveName(lines []string, text string) (first, last string) {
	for _, strategy := range nameStrategies {
		if candidate := strategy(lines, text); candidate != "" {
			return splitName(candidate)
		}
	}
	return "", ""
}

// nameFromFirstLine accepts line 0 as the name when it is a short
// letters-only line that is not a document header ("Curriculum Vitae",
// "Resume", ...).
func nameFromFirstLine(lines []string, _ string) string {
	if len(lines) == 0 {
		return ""
	}
	candidate := collapseSpaces(lines[0])
	if len(candidate) <= minNameLength || len(candidate) >= maxNameLength {
		return ""
	}
	if !nameCharsRe.MatchString(candidate) {
		return ""
	}
	lower := strings.ToLower(candidate)
	for _, noise := range nameNoiseWords {
		if strings.Contains(lower, noise) {
			return ""
		}
	}
	return candidate
}

// nameFromEntities runs the person-name recognizer over the text and takes
// its first hit. The input is capped; names live near the top of a CV.
func nameFromEntities(_ []string, text string) string {
	if len(text) > nerTextCharLimit {
		text = text[:nerTextCharLimit]
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return ""
	}
	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			return collapseSpaces(ent.Text)
		}
	}
	return ""
}

// nameFromEarlyLines scans lines 1-9 for a 2-6 word letters-only line.
func nameFromEarlyLines(lines []string, _ string) string {
	for i := 1; i < len(lines) && i < 10; i++ {
		candidate := collapseSpaces(lines[i])
		if len(candidate) <= minEarlyNameLineLength || len(candidate) >= maxNameLength {
			continue
		}
		if !earlyNameLineRe.MatchString(candidate) {
			continue
		}
		if words := len(strings.Fields(candidate)); words >= 2 && words <= 6 {
			return candidate
		}
	}
	return ""
}

// splitName tokenizes the candidate and splits it into first and last name.
// PDF extraction sometimes inserts spaces inside names ("S an ge eth
// Per era"); when at least half of more than three tokens are short, the
// tokens are merged at the midpoint instead: first half concatenated is the
// first name, second half the last name.
func splitName(candidate string) (first, last string) {
	tokens := strings.Fields(candidate)
	if len(tokens) == 0 {
		return "", ""
	}

	short := 0
	for _, t := range tokens {
		if len(t) <= spacingArtifactShortLen {
			short++
		}
	}
	if len(tokens) >= spacingArtifactMinTokens &&
		float64(short) >= float64(len(tokens))*spacingArtifactRatio {
		mid := len(tokens) / 2
		return strings.Join(tokens[:mid], ""), strings.Join(tokens[mid:], "")
	}

	if len(tokens) == 1 {
		return tokens[0], ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}
