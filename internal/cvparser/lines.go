package cvparser

import "strings"

// splitLines normalizes raw document text into the line record consumed
// by every downstream stage: trimmed, non-empty lines in source order.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// collapseSpaces squeezes runs of whitespace into single spaces. PDF text
// extraction frequently pads characters with extra spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
