package sanitization

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	spaceRegex = regexp.MustCompile(`[ \t]+`)

	// CMS bodies are rich text: paragraphs, lists, links, headings, tables.
	contentPolicy = bluemonday.UGCPolicy()
	textPolicy    = bluemonday.StrictPolicy()
)

// SanitizeString strips control characters, collapses runs of spaces and
// trims the result. Newlines are kept so multi-line messages survive.
func SanitizeString(input string) string {
	safe := spaceRegex.ReplaceAllString(SanitizeInput(input), " ")

	return strings.TrimSpace(safe)
}

// SanitizeInput strips control characters other than newline and tab and
// leaves whitespace as typed, so field rules judge what the visitor entered.
func SanitizeInput(input string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeEmail trims and lower-cases an email address
func SanitizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// SanitizeName trims a name and collapses inner whitespace to single spaces
func SanitizeName(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// SanitizeHTML keeps the safe subset of HTML in content coming from the CMS
func SanitizeHTML(input string) string {
	return contentPolicy.Sanitize(input)
}

// StripHTML reduces HTML to its text content, e.g. for terminal output
func StripHTML(input string) string {
	text := textPolicy.Sanitize(input)
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
