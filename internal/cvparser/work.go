package cvparser

import (
	"regexp"
	"strings"
	"time"
)

const monthAlternation = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	monthTokenRe = regexp.MustCompile(`(?i)\b` + monthAlternation + `\b\.?\s+\d{4}`)
	// "<month> <year> <dash> (<month> <year>|<year>|present...)" — the tail of
	// a single-line work entry.
	workDateTailRe = regexp.MustCompile(`(?i)^` + monthAlternation + `\.?\s+\d{4}\s*(?:–|—|-|to)\s*(?:` + monthAlternation + `\.?\s+\d{4}|\d{4}|present|current|ongoing|now)`)
	workedAsRe     = regexp.MustCompile(`(?i)^worked\s+as\s+(.+)$`)
	parenRe        = regexp.MustCompile(`\(([^)]*)\)`)
	parenOnlyRe    = regexp.MustCompile(`^\(([^)]*)\)$`)
	// "Position at Company (date range)".
	titleAtCompanyRe = regexp.MustCompile(`^(.+?)\s+at\s+(.+?)\s*\(([^)]+)\)\s*$`)
	pipeLineRe       = regexp.MustCompile(`^(.+?)\s*\|\s*(.+)$`)
	// "Acme Corp - London" style trailing location suffix.
	trailingLocationRe = regexp.MustCompile(`\s[-–—]\s+[A-Z][A-Za-z .]+$`)
)

// buildWork extracts work/project entries from the work sections, or from
// the whole text when segmentation found no work section at all. Entries
// need a non-empty position and start date to be retained.
func buildWork(lines []string, sections []Section, now time.Time) []WorkExperienceEntry {
	workSections := sectionsOf(sections, SectionWork)
	if len(workSections) == 0 {
		return scanWorkLines(lines, 0, len(lines), false, now)
	}
	var entries []WorkExperienceEntry
	for _, sec := range workSections {
		entries = append(entries, scanWorkLines(lines, sec.Start, sec.End, true, now)...)
	}
	return entries
}

// scanWorkLines runs the line-pattern strategies over [start, end). The
// scan stops early if a non-work section header reappears mid-range.
func scanWorkLines(lines []string, start, end int, inWorkSection bool, now time.Time) []WorkExperienceEntry {
	var entries []WorkExperienceEntry
	consumed := make(map[int]bool)

	for i := start; i < end && i < len(lines); i++ {
		if consumed[i] {
			continue
		}
		line := lines[i]
		if kind, ok := headerKindOf(line); ok && kind != SectionWork {
			break
		}

		if entry, used, ok := matchBlockEntry(lines, i, end, now); ok {
			entries, consumed = keepEntry(entries, entry, consumed, used)
			continue
		}
		if entry, used, ok := matchTitleAtCompany(line, i, now); ok {
			entries, consumed = keepEntry(entries, entry, consumed, used)
			continue
		}
		if entry, used, ok := matchPipeLine(lines, i, end, inWorkSection, now); ok {
			entries, consumed = keepEntry(entries, entry, consumed, used)
			continue
		}
		if entry, used, ok := matchSingleLine(lines, i, end, inWorkSection, now); ok {
			entries, consumed = keepEntry(entries, entry, consumed, used)
			continue
		}
	}
	return entries
}

func keepEntry(entries []WorkExperienceEntry, entry WorkExperienceEntry, consumed map[int]bool, used []int) ([]WorkExperienceEntry, map[int]bool) {
	for _, idx := range used {
		consumed[idx] = true
	}
	if entry.Position != "" && entry.StartDate != "" {
		entries = append(entries, entry)
	}
	return entries, consumed
}

// matchBlockEntry matches the block layout: a company-like line followed by
// a "Worked as ..." line with a parenthesized date range on the same or the
// next line. Subsequent bullet lines become the description.
func matchBlockEntry(lines []string, i, end int, now time.Time) (WorkExperienceEntry, []int, bool) {
	if !isCompanyLine(lines[i]) || i+1 >= end || i+1 >= len(lines) {
		return WorkExperienceEntry{}, nil, false
	}
	m := workedAsRe.FindStringSubmatch(lines[i+1])
	if m == nil {
		return WorkExperienceEntry{}, nil, false
	}

	used := []int{i, i + 1}
	rest := strings.TrimSpace(m[1])

	var dateText string
	if pm := parenRe.FindStringSubmatch(rest); pm != nil {
		dateText = pm[1]
		rest = strings.TrimSpace(rest[:strings.Index(rest, "(")])
	} else if i+2 < end && i+2 < len(lines) {
		if pm := parenOnlyRe.FindStringSubmatch(lines[i+2]); pm != nil {
			dateText = pm[1]
			used = append(used, i+2)
		}
	}

	entry := WorkExperienceEntry{
		Company:  strings.TrimSpace(trailingLocationRe.ReplaceAllString(lines[i], "")),
		Position: rest,
	}
	if dateText != "" {
		r := parseDateRange(dateText)
		entry.StartDate = r.startDateString()
		entry.EndDate = r.endDateString(now)
	}

	// Bullet lines after the header pair describe the role.
	var desc []string
	for j := used[len(used)-1] + 1; j < end && j < len(lines); j++ {
		if !bulletRe.MatchString(lines[j]) {
			break
		}
		desc = append(desc, stripBullet(lines[j]))
		used = append(used, j)
	}
	entry.Description = strings.Join(desc, " ")
	return entry, used, true
}

func matchTitleAtCompany(line string, i int, now time.Time) (WorkExperienceEntry, []int, bool) {
	m := titleAtCompanyRe.FindStringSubmatch(line)
	if m == nil {
		return WorkExperienceEntry{}, nil, false
	}
	position := strings.TrimSpace(m[1])
	if isDegreeLine(strings.ToLower(position)) {
		return WorkExperienceEntry{}, nil, false
	}
	r := parseDateRange(m[3])
	if r.Start.Time.IsZero() {
		return WorkExperienceEntry{}, nil, false
	}
	return WorkExperienceEntry{
		Position:  position,
		Company:   strings.TrimSpace(m[2]),
		StartDate: r.startDateString(),
		EndDate:   r.endDateString(now),
	}, []int{i}, true
}

// matchPipeLine matches "Position | <date text>" with the company taken
// from the following line when inside a work section.
func matchPipeLine(lines []string, i, end int, inWorkSection bool, now time.Time) (WorkExperienceEntry, []int, bool) {
	m := pipeLineRe.FindStringSubmatch(lines[i])
	if m == nil {
		return WorkExperienceEntry{}, nil, false
	}
	position := strings.TrimSpace(m[1])
	if isDegreeLine(strings.ToLower(position)) {
		return WorkExperienceEntry{}, nil, false
	}
	r := parseDateRange(m[2])
	if r.Start.Time.IsZero() {
		return WorkExperienceEntry{}, nil, false
	}
	entry := WorkExperienceEntry{
		Position:  position,
		StartDate: r.startDateString(),
		EndDate:   r.endDateString(now),
	}
	used := []int{i}
	if inWorkSection {
		if company, j, ok := companyFromNextLine(lines, i, end); ok {
			entry.Company = company
			used = append(used, j)
		}
	}
	return entry, used, true
}

// matchSingleLine matches "<title> <month> <year> <dash> <month> <year>"
// on one line.
func matchSingleLine(lines []string, i, end int, inWorkSection bool, now time.Time) (WorkExperienceEntry, []int, bool) {
	line := lines[i]
	loc := monthTokenRe.FindStringIndex(line)
	if loc == nil || loc[0] == 0 {
		return WorkExperienceEntry{}, nil, false
	}
	tail := line[loc[0]:]
	if !workDateTailRe.MatchString(tail) {
		return WorkExperienceEntry{}, nil, false
	}
	position := strings.TrimSpace(strings.Trim(line[:loc[0]], " ,|-–—"))
	if position == "" || isDegreeLine(strings.ToLower(position)) {
		return WorkExperienceEntry{}, nil, false
	}

	r := parseDateRange(tail)
	entry := WorkExperienceEntry{
		Position:  position,
		StartDate: r.startDateString(),
		EndDate:   r.endDateString(now),
	}
	used := []int{i}
	if inWorkSection {
		if company, j, ok := companyFromNextLine(lines, i, end); ok {
			entry.Company = company
			used = append(used, j)
		}
	}
	return entry, used, true
}

func companyFromNextLine(lines []string, i, end int) (string, int, bool) {
	j := i + 1
	if j >= end || j >= len(lines) {
		return "", 0, false
	}
	next := lines[j]
	if bulletRe.MatchString(next) || len(next) >= maxCompanyLineLength {
		return "", 0, false
	}
	if monthTokenRe.MatchString(next) || workedAsRe.MatchString(next) {
		return "", 0, false
	}
	return strings.TrimSpace(trailingLocationRe.ReplaceAllString(next, "")), j, true
}

// isCompanyLine reports whether the line names a company: a corporate
// suffix token or a trailing "- Location" hint.
func isCompanyLine(line string) bool {
	if containsAnyTerm(strings.ToLower(line), companySuffixTokens) {
		return true
	}
	return trailingLocationRe.MatchString(line)
}
