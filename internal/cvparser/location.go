package cvparser

import (
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

var (
	addressLabelRe  = regexp.MustCompile(`(?i)^address\s*[:：]\s*`)
	locationWordsRe = regexp.MustCompile(`(?i)\b(address|location|city|country)\b\s*[:：]?\s*`)
	// UK-style postcodes plus bare numeric codes.
	ukPostcodeRe      = regexp.MustCompile(`(?i)\b[A-Z]{1,2}\d{1,2}[A-Z]?\s?\d[A-Z]{2}\b`)
	numericPostcodeRe = regexp.MustCompile(`^\d{4,6}$`)
)

// location is the resolved address triple.
type location struct {
	Address string
	City    string
	Country string
}

// resolveLocation runs the address strategy chain: an explicit "Address:"
// line first, then the place-name recognizer over the whole text, then a
// keyword scan. Institutions feed the country-inference fallback when no
// trustworthy country was found.
func resolveLocation(lines []string, text string, institutions []string) location {
	loc, ok := locationFromLabel(lines)
	if !ok {
		loc, ok = locationFromEntities(text)
	}
	if !ok {
		loc, _ = locationFromKeywords(lines)
	}

	// A country that is empty or looks like a postal code is not trusted;
	// fall back to known country names inside institution strings.
	if loc.Country == "" || looksLikePostcode(loc.Country) {
		loc.Country = countryFromInstitutions(institutions)
	}
	return loc
}

func locationFromLabel(lines []string) (location, bool) {
	for _, line := range lines {
		if !addressLabelRe.MatchString(line) {
			continue
		}
		value := strings.TrimSpace(addressLabelRe.ReplaceAllString(line, ""))
		if value == "" {
			return location{}, false
		}
		loc := splitAddressParts(value)
		loc.Address = value
		return loc, true
	}
	return location{}, false
}

// locationFromEntities collects recognized place names over the whole text,
// deduplicated in order of appearance. A single unique place is taken as
// the country; with more, the first is the city and the last the country.
func locationFromEntities(text string) (location, bool) {
	if len(text) > nerTextCharLimit {
		text = text[:nerTextCharLimit]
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return location{}, false
	}
	var places []string
	for _, ent := range doc.Entities() {
		if ent.Label != "GPE" && ent.Label != "LOC" {
			continue
		}
		places = append(places, collapseSpaces(ent.Text))
	}
	places = dedupeParts(places)
	switch {
	case len(places) == 0:
		return location{}, false
	case len(places) == 1:
		return location{Country: places[0]}, true
	default:
		return location{City: places[0], Country: places[len(places)-1]}, true
	}
}

func locationFromKeywords(lines []string) (location, bool) {
	for _, line := range lines {
		if !locationWordsRe.MatchString(line) {
			continue
		}
		value := strings.TrimSpace(locationWordsRe.ReplaceAllString(line, ""))
		if value == "" {
			continue
		}
		loc := splitAddressParts(value)
		loc.Address = value
		return loc, true
	}
	return location{}, false
}

// splitAddressParts splits a comma-separated address into parts, removes
// duplicate parts while preserving order, and assigns city/country. A
// postal-code-like token locates the city immediately preceding it; the
// last remaining part is the country unless it itself looks like a postal
// code, in which case the country stays empty rather than guessed.
func splitAddressParts(value string) location {
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	parts = dedupeParts(parts)
	if len(parts) == 0 {
		return location{}
	}

	var loc location
	for i, p := range parts {
		code := ukPostcodeRe.FindString(p)
		if code == "" && !looksLikePostcode(p) {
			continue
		}
		// The city usually sits just before the postcode, either embedded
		// in the same part or as the previous part.
		if code != "" {
			if rest := strings.TrimSpace(strings.Replace(p, code, "", 1)); rest != "" {
				loc.City = strings.Trim(rest, " ,")
				break
			}
		}
		if i > 0 {
			loc.City = parts[i-1]
		}
		break
	}

	last := parts[len(parts)-1]
	if !looksLikePostcode(last) && !ukPostcodeRe.MatchString(last) {
		loc.Country = last
	}
	if loc.City == "" && len(parts) >= 2 && loc.Country != "" {
		loc.City = parts[len(parts)-2]
	}
	if loc.City == loc.Country {
		loc.City = ""
	}
	return loc
}

func dedupeParts(parts []string) []string {
	seen := make(map[string]struct{}, len(parts))
	out := parts[:0]
	for _, p := range parts {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func looksLikePostcode(s string) bool {
	s = strings.TrimSpace(s)
	return numericPostcodeRe.MatchString(s) || ukPostcodeRe.MatchString(s) && len(s) <= 9
}

// countryFromInstitutions scans institution names for known country-name
// substrings and adopts the first hit. The table order is fixed so the
// result is deterministic for a given profile.
func countryFromInstitutions(institutions []string) string {
	for _, inst := range institutions {
		lower := strings.ToLower(inst)
		for _, c := range countryNames {
			if strings.Contains(lower, c.Key) {
				return c.Name
			}
		}
	}
	return ""
}
