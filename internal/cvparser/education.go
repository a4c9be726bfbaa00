package cvparser

import "strings"

// educationResult carries everything the education builder produces.
type educationResult struct {
	Education      []EducationEntry
	Qualifications []QualificationEntry
	Level          EducationLevel
}

// lineClass is the mutually exclusive classification the builder assigns to
// each education-section line.
type lineClass int

const (
	lineNoise lineClass = iota
	lineQualification
	lineDegree
	lineInstitution
)

// dashVariants are the separators recognized when splitting a
// qualification line into degree and institution. All three must be
// handled; CVs use them interchangeably.
var dashVariants = []string{"-", "–", "—"}

// buildEducation runs the per-line classifier and entry-accumulation state
// machine over the education section. When the section-based pass yields
// nothing it falls back to a whole-text scan.
func buildEducation(lines []string, sections []Section) educationResult {
	var res educationResult

	sec, ok := firstSection(sections, SectionEducation)
	if ok {
		res = scanEducationLines(lines[sec.Start:sec.End])
	}
	if len(res.Education) == 0 && len(res.Qualifications) == 0 {
		res = educationFallback(lines)
	}

	if len(res.Education) > 0 {
		res.Level = classifyEducationLevel(res.Education[0].Degree)
	}
	return res
}

// scanEducationLines is the accumulation state machine: degree and
// qualification lines open entries, institution lines attach to the open
// entry, everything else is noise.
func scanEducationLines(lines []string) educationResult {
	var res educationResult
	var current *EducationEntry
	var currentIsQual bool

	flush := func() {
		if current == nil {
			return
		}
		if strings.TrimSpace(current.Degree) != "" {
			if currentIsQual {
				res.Qualifications = append(res.Qualifications, QualificationEntry(*current))
			} else {
				res.Education = append(res.Education, *current)
			}
		}
		current = nil
	}

	for _, line := range lines {
		switch classifyEducationLine(line) {
		case lineQualification:
			flush()
			entry := qualificationFromLine(line)
			current = &entry
			currentIsQual = true

		case lineDegree:
			flush()
			entry := degreeFromLine(line)
			current = &entry
			currentIsQual = false

		case lineInstitution:
			if current == nil {
				continue
			}
			inst := stripBullet(line)
			if current.Institution == "" {
				current.Institution = inst
			}
			if current.GraduationYear == "" {
				if y := yearRe.FindString(line); y != "" {
					current.GraduationYear = y
				}
			}
			if current.GPA == "" {
				if m := gpaRe.FindStringSubmatch(line); m != nil {
					current.GPA = m[1]
				}
			}

		default:
			// Noise, with one exception: a qualification's awarding body
			// may be a secondary school, which the institution classifier
			// rejects for degree entries.
			if current != nil && currentIsQual && current.Institution == "" &&
				len(line) <= noiseLineLength && !isWorkLeakage(line) &&
				containsAnyTerm(strings.ToLower(line), institutionTerms) {
				current.Institution = stripBullet(line)
			}
		}
	}
	flush()
	return res
}

// classifyEducationLine evaluates the predicates in priority order.
// Qualification is checked before degree because secondary-certificate
// lines ("G.C.E. Advanced Level") often match the degree vocabulary too.
func classifyEducationLine(line string) lineClass {
	lower := strings.ToLower(line)

	if containsAnyTerm(lower, qualificationTerms) {
		return lineQualification
	}
	if isDegreeLine(lower) {
		return lineDegree
	}
	if isWorkLeakage(line) || len(line) > noiseLineLength {
		return lineNoise
	}
	if isInstitutionLine(lower) {
		return lineInstitution
	}
	return lineNoise
}

func isDegreeLine(lower string) bool {
	// "Major: ..." lines repeat degree vocabulary without being headings.
	if strings.Contains(lower, "major:") {
		return false
	}
	return containsAnyTerm(lower, degreeTerms)
}

func isInstitutionLine(lower string) bool {
	if strings.HasPrefix(lower, "•") || bulletRe.MatchString(lower) {
		return false
	}
	if containsAnyTerm(lower, secondarySchoolTerms) {
		return false
	}
	return containsAnyTerm(lower, institutionTerms)
}

// isWorkLeakage flags lines that belong to a work-experience block that
// bled into the education section.
func isWorkLeakage(line string) bool {
	if strings.Contains(line, "|") {
		return true
	}
	if startsWithImperative(line) {
		return true
	}
	lower := strings.ToLower(line)
	if containsAnyTerm(lower, companySuffixTokens) {
		return true
	}
	return containsAnyTerm(lower, jobTitleTokens)
}

// degreeFromLine opens a new education entry from a degree heading,
// pulling the graduation year out of any date range on the same line.
func degreeFromLine(line string) EducationEntry {
	entry := EducationEntry{Degree: stripBullet(line)}
	if yearRe.MatchString(line) {
		r := parseDateRange(line)
		// With a full range the end year graduates; a single date keeps
		// its own year.
		if y := yearOf(r.End); y != "" {
			entry.GraduationYear = y
		} else if y := yearOf(r.Start); y != "" {
			entry.GraduationYear = y
		}
	}
	if m := gpaRe.FindStringSubmatch(line); m != nil {
		entry.GPA = m[1]
	}
	return entry
}

// qualificationFromLine opens a pre-degree qualification entry, splitting
// "qualification - institution" on the first dash variant when present.
func qualificationFromLine(line string) EducationEntry {
	entry := EducationEntry{Degree: stripBullet(line)}
	text := entry.Degree
	// Space-surrounded separators first, so "A-Level" is not split on its
	// own hyphen.
	cut, width := firstDashIndex(text, []string{" - ", " – ", " — "})
	if cut < 0 {
		cut, width = firstDashIndex(text, dashVariants)
	}
	if cut > 0 {
		entry.Degree = strings.TrimSpace(text[:cut])
		entry.Institution = strings.TrimSpace(text[cut+width:])
	}
	if y := yearRe.FindString(line); y != "" {
		entry.GraduationYear = y
	}
	// The year already lives in GraduationYear; a copy trailing the
	// institution name is noise.
	if y := yearRe.FindString(entry.Institution); y != "" {
		entry.Institution = strings.TrimSpace(strings.TrimSuffix(entry.Institution, y))
	}
	return entry
}

func firstDashIndex(text string, dashes []string) (idx, width int) {
	idx = -1
	for _, dash := range dashes {
		if i := strings.Index(text, dash); i > 0 && (idx < 0 || i < idx) {
			idx, width = i, len(dash)
		}
	}
	return idx, width
}

// classifyEducationLevel tests the ordered category table against the
// first education entry's degree text; the first category whose keyword
// set matches wins.
func classifyEducationLevel(degree string) EducationLevel {
	lower := strings.ToLower(degree)
	for _, cat := range educationLevelTable {
		if containsAnyTerm(lower, cat.Keywords) {
			return cat.Level
		}
	}
	return LevelUnknown
}

// educationFallback is the whole-text pass used when no education section
// was found or the section produced nothing: degree-keyword lines become
// entries, the following line supplies the institution, and a year-range
// scan over the whole text provides a default graduation year.
func educationFallback(lines []string) educationResult {
	var res educationResult
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !isDegreeLine(lower) || len(line) > noiseLineLength || isWorkLeakage(line) {
			continue
		}
		entry := degreeFromLine(line)
		if i+1 < len(lines) && isInstitutionLine(strings.ToLower(lines[i+1])) {
			entry.Institution = stripBullet(lines[i+1])
		}
		res.Education = append(res.Education, entry)
	}

	if len(res.Education) > 0 && res.Education[0].GraduationYear == "" {
		text := strings.Join(lines, "\n")
		if m := yearRangeRe.FindStringSubmatch(text); m != nil {
			res.Education[0].GraduationYear = m[2]
		}
	}
	return res
}
