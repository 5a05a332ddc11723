package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when neither the request nor the configuration
// names a language.
const DefaultLanguage = "en"

const maxLangCodeLength = 35

// Normalize canonicalizes a language code ("EN_us" becomes "en-US").
// It returns an empty string for malformed codes.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || len(lang) > maxLangCodeLength {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return ""
	}
	return tag.String()
}

// Matcher picks the best supported language for a requested one.
type Matcher struct {
	supported []string
	matcher   language.Matcher
}

// NewMatcher creates a matcher over the supported languages. The first
// supported language is the fallback for unmatched requests. Malformed codes
// are ignored.
func NewMatcher(supported ...string) *Matcher {
	m := &Matcher{}
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		m.supported = append(m.supported, tag.String())
	}
	if len(tags) > 0 {
		m.matcher = language.NewMatcher(tags)
	}
	return m
}

// Supported reports the languages the matcher was created with.
func (m *Matcher) Supported() []string {
	return append([]string(nil), m.supported...)
}

// Match returns the supported language closest to the requested ones and
// whether the match is better than a plain fallback. With no supported
// languages the first requested language is returned as is.
func (m *Matcher) Match(requested ...string) (string, bool) {
	if m.matcher == nil {
		for _, r := range requested {
			if n := Normalize(r); n != "" {
				return n, true
			}
		}
		return "", false
	}

	tags := make([]language.Tag, 0, len(requested))
	for _, r := range requested {
		if tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(r), "_", "-")); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return m.supported[0], false
	}
	_, idx, conf := m.matcher.Match(tags...)
	return m.supported[idx], conf != language.No
}

// ParseAcceptLanguage returns the best supported language for an
// Accept-Language header value, or fallback when nothing matches.
func ParseAcceptLanguage(header string, supported []string, fallback string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	requested := make([]string, len(tags))
	for i, t := range tags {
		requested[i] = t.String()
	}
	lang, ok := NewMatcher(supported...).Match(requested...)
	if !ok {
		return fallback
	}
	return lang
}
