// Package i18n resolves the visitor locale, its text direction and the
// translated UI strings for that locale.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported site language
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"

	// Default is used when nothing in the request selects a supported locale.
	Default = English
)

// Direction is the text directionality of a locale
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

var (
	supported = []Locale{English, Arabic}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Arabic})
)

// Supported returns the site languages in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Dir returns the text direction for the locale.
func (l Locale) Dir() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// IsRTL reports whether the locale is written right-to-left.
func (l Locale) IsRTL() bool {
	return l.Dir() == RTL
}

func (l Locale) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	if l == Arabic {
		return language.Arabic
	}
	return language.English
}

// Parse maps a language tag such as "ar", "ar-SA" or "en-GB" to a supported
// locale. The bool is false when the value is not a tag or no supported
// locale matches it.
func Parse(value string) (Locale, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default, false
	}
	return supported[idx], true
}

// MatchAcceptLanguage picks the best supported locale for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) Locale {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// Bilingual is a value the backend stores in both site languages.
type Bilingual struct {
	Default string
	Arabic  string
}

// Pick returns the Arabic value for the Arabic locale when it is set, and
// the default value otherwise.
func Pick(l Locale, b Bilingual) string {
	if l == Arabic && strings.TrimSpace(b.Arabic) != "" {
		return b.Arabic
	}
	return b.Default
}
