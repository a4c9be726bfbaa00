package cvparser

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Extractor runs the text-to-profile pipeline. It holds no per-call state:
// the same Extractor may serve any number of concurrent extractions.
type Extractor struct {
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithClock overrides the clock used to resolve open-ended date ranges.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// NewExtractor creates a ready-to-use Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract turns the decoded document text into a structured candidate
// profile. It never panics: every sub-extractor failure degrades to an
// empty value for that field only. Success is false only when the text
// holds no content at all.
func (e *Extractor) Extract(text string) ExtractionResult {
	if strings.TrimSpace(text) == "" {
		return ExtractionResult{Success: false, Message: "no text content found in document"}
	}

	lines := splitLines(text)
	sections := e.segmentSafe(lines)
	profile := e.compose(lines, sections, text)

	e.logger.Debug().
		Int("lines", len(lines)).
		Int("sections", len(sections)).
		Int("education_entries", len(profile.Education)).
		Int("work_entries", len(profile.WorkExperience)).
		Int("skills", len(profile.Skills)).
		Msg("cv extraction complete")

	return ExtractionResult{Success: true, Data: profile, Message: "cv data extracted"}
}

func (e *Extractor) segmentSafe(lines []string) []Section {
	var sections []Section
	e.run("segmenter", func() { sections = segment(lines) })
	return sections
}

// compose overlays every sub-result onto a default-empty profile and
// filters malformed entries. Each branch runs behind its own recover
// boundary.
func (e *Extractor) compose(lines []string, sections []Section, text string) *CandidateProfile {
	profile := &CandidateProfile{
		Education:      []EducationEntry{},
		Qualifications: []QualificationEntry{},
		WorkExperience: []WorkExperienceEntry{},
		Skills:         []string{},
	}

	var edu educationResult
	e.run("education", func() { edu = buildEducation(lines, sections) })
	profile.Education = filterEducation(edu.Education)
	profile.Qualifications = filterQualifications(edu.Qualifications)
	profile.EducationLevel = edu.Level

	e.run("name", func() {
		profile.PersonalInfo.FirstName, profile.PersonalInfo.LastName = resolveName(lines, text)
	})
	e.run("email", func() { profile.PersonalInfo.Email = extractEmail(text) })
	e.run("phone", func() { profile.PersonalInfo.Phone = extractPhone(text) })
	e.run("location", func() {
		institutions := make([]string, 0, len(profile.Education))
		for _, entry := range profile.Education {
			institutions = append(institutions, entry.Institution)
		}
		loc := resolveLocation(lines, text, institutions)
		profile.PersonalInfo.Address = loc.Address
		profile.PersonalInfo.City = loc.City
		profile.PersonalInfo.Country = loc.Country
	})
	e.run("work", func() {
		profile.WorkExperience = filterWork(buildWork(lines, sections, e.now()))
	})
	e.run("skills", func() { profile.Skills = filterStrings(matchSkills(lines, sections)) })
	e.run("links", func() { profile.Links = extractLinks(text) })

	return profile
}

// run executes one sub-extractor behind a recover boundary; a panic leaves
// the corresponding field at its zero value.
func (e *Extractor) run(stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Str("stage", stage).Interface("panic", r).
				Msg("cv extraction stage failed, field left empty")
		}
	}()
	fn()
}

func filterEducation(entries []EducationEntry) []EducationEntry {
	out := make([]EducationEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Degree) == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func filterQualifications(entries []QualificationEntry) []QualificationEntry {
	out := make([]QualificationEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Degree) == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func filterWork(entries []WorkExperienceEntry) []WorkExperienceEntry {
	out := make([]WorkExperienceEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Position) == "" || strings.TrimSpace(entry.StartDate) == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func filterStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate computes non-fatal completeness warnings for a profile. Callers
// use them as UX hints; they never block processing.
func Validate(profile *CandidateProfile) []string {
	var warnings []string
	if profile == nil {
		return []string{"no profile data"}
	}
	if profile.PersonalInfo.FirstName == "" && profile.PersonalInfo.LastName == "" {
		warnings = append(warnings, "name could not be detected")
	}
	if profile.PersonalInfo.Email == "" {
		warnings = append(warnings, "email address missing")
	}
	if profile.PersonalInfo.Phone == "" {
		warnings = append(warnings, "phone number missing")
	}
	if len(profile.Education) == 0 {
		warnings = append(warnings, "no education entries found")
	}
	if len(profile.WorkExperience) == 0 {
		warnings = append(warnings, "no work experience found")
	}
	if len(profile.Skills) == 0 {
		warnings = append(warnings, "no skills detected")
	}
	return warnings
}
