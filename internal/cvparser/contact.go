package cvparser

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// extractEmail finds the first plausible address in the text, preferring
// addresses that survive RFC address parsing and whose local part is not a
// generic or no-reply mailbox.
func extractEmail(text string) string {
	candidates := emailRe.FindAllString(text, -1)
	if len(candidates) == 0 {
		return ""
	}

	// First pass: parseable and not denylisted.
	for _, c := range candidates {
		if _, err := mail.ParseAddress(c); err == nil && !emailDenylisted(c) {
			return c
		}
	}
	// Fallback: bare pattern match under the same denylist preference.
	for _, c := range candidates {
		if !emailDenylisted(c) {
			return c
		}
	}
	return candidates[0]
}

func emailDenylisted(addr string) bool {
	lower := strings.ToLower(addr)
	for _, d := range emailDenylist {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// extractPhone tries the ordered locale pattern list against the text. The
// first pattern family that matches ends the search: its match is validated
// against the trial country codes and, when one of them produces a valid
// number, rendered in international format. An unvalidatable match is kept
// with punctuation stripped rather than discarded.
func extractPhone(text string) string {
	for _, family := range phonePatterns {
		match := family.Pattern.FindString(text)
		if match == "" {
			continue
		}
		for _, region := range phoneTrialRegions {
			num, err := phonenumbers.Parse(match, region)
			if err != nil {
				continue
			}
			if phonenumbers.IsValidNumber(num) {
				return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
			}
		}
		return stripPhonePunctuation(match)
	}
	return ""
}

func stripPhonePunctuation(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
