package statute

import (
	"regexp"
	"strings"
)

var (
	sectionRef    = regexp.MustCompile(`(?i)section\s+(\d+[a-z]*)`)
	nonAlphanumer = regexp.MustCompile(`[^a-z0-9]`)
)

// CanonicalSectionNo formats a bare section number the way ingestion stores it
// ("302" -> "Section 302.").
func CanonicalSectionNo(number string) string {
	return "Section " + strings.ToUpper(strings.TrimSpace(number)) + "."
}

// ParseSectionRef extracts a "Section N" reference from free text and returns the
// canonical stored form. ok is false when the text has no such reference.
func ParseSectionRef(text string) (sectionNo string, ok bool) {
	m := sectionRef.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return CanonicalSectionNo(m[1]), true
}

// NormalizeNumber reduces a section label to a comparable token:
// lower-cased, the word "section" removed, and everything but letters and digits dropped.
// "Section 498A." and " 498a " both normalise to "498a".
func NormalizeNumber(label string) string {
	s := strings.ToLower(label)
	s = strings.ReplaceAll(s, "section", "")
	return nonAlphanumer.ReplaceAllString(s, "")
}
