package cvparser

import "strings"

// SectionKind tags a contiguous line range with its semantic role.
type SectionKind int

const (
	SectionOther SectionKind = iota
	SectionPersonal
	SectionEducation
	SectionWork
	SectionSkills
)

func (k SectionKind) String() string {
	switch k {
	case SectionPersonal:
		return "personal"
	case SectionEducation:
		return "education"
	case SectionWork:
		return "work"
	case SectionSkills:
		return "skills"
	default:
		return "other"
	}
}

// Section is a half-open range [Start, End) of line indices. The header
// line itself is not part of the range.
type Section struct {
	Kind  SectionKind
	Start int
	End   int
}

// segmenter is the finite-state scanner over lines. The state is the kind
// of the currently open section; a header line of any other kind is the
// transition that closes it.
type segmenter struct {
	current SectionKind
	start   int
	out     []Section
}

// segment tags the line record into ordered, non-overlapping sections.
// Scanning starts in an implicit Other section at line 0.
func segment(lines []string) []Section {
	s := &segmenter{current: SectionOther, start: 0}
	for i, line := range lines {
		kind, ok := headerKindOf(line)
		if !ok {
			continue
		}
		// Any header keyword terminates the open section, including a
		// repeated header of the same kind (the section restarts).
		s.close(i)
		s.current = kind
		s.start = i + 1 // the header line is discarded
	}
	s.close(len(lines))
	return s.out
}

func (s *segmenter) close(end int) {
	if end > s.start {
		s.out = append(s.out, Section{Kind: s.current, Start: s.start, End: end})
	}
}

// headerKindOf reports whether the entire line, lowercased and trimmed of
// surrounding punctuation, is a known section header. Substring matches are
// deliberately rejected so prose mentioning "experience" does not open a
// section.
func headerKindOf(line string) (SectionKind, bool) {
	norm := normalizeHeader(line)
	if norm == "" {
		return SectionOther, false
	}
	for kind, keywords := range headerKeywords {
		for _, kw := range keywords {
			if norm == kw {
				return kind, true
			}
		}
	}
	return SectionOther, false
}

func normalizeHeader(line string) string {
	norm := strings.ToLower(strings.TrimSpace(line))
	norm = strings.Trim(norm, ":;.,-–—_|• \t")
	norm = strings.ReplaceAll(norm, "&", "and")
	return collapseSpaces(norm)
}

// sectionsOf returns every section of the given kind in order.
func sectionsOf(sections []Section, kind SectionKind) []Section {
	var out []Section
	for _, sec := range sections {
		if sec.Kind == kind {
			out = append(out, sec)
		}
	}
	return out
}

// firstSection returns the first section of the given kind; single-valued
// kinds take the first occurrence.
func firstSection(sections []Section, kind SectionKind) (Section, bool) {
	for _, sec := range sections {
		if sec.Kind == kind {
			return sec, true
		}
	}
	return Section{}, false
}

// sectionText joins the lines of every section of the given kind.
func sectionText(lines []string, sections []Section, kind SectionKind) string {
	var b strings.Builder
	for _, sec := range sectionsOf(sections, kind) {
		for i := sec.Start; i < sec.End && i < len(lines); i++ {
			b.WriteString(lines[i])
			b.WriteByte('\n')
		}
	}
	return b.String()
}
