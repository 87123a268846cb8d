package pipeline

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Excerpt lengths used across the site.
const (
	ExcerptLength     = 200 // Cards, descriptions, social tags
	MetaExcerptLength = 300 // <meta name="description">
	LDExcerptLength   = 350 // BlogPosting description
)

// Ellipsis is appended to truncated excerpts.
const Ellipsis = "…"

// stripPolicy removes every tag; element contents of script and style are dropped.
var stripPolicy = bluemonday.StrictPolicy()

// Private Use Area stand-ins keep escaped angle brackets out of the decode pass.
const (
	ltPlaceholder = "\uE002"
	gtPlaceholder = "\uE003"
)

var (
	protectAngles = strings.NewReplacer(ltPlaceholder, "", gtPlaceholder, "", "&lt;", ltPlaceholder, "&gt;", gtPlaceholder)
	restoreAngles = strings.NewReplacer(ltPlaceholder, "&lt;", gtPlaceholder, "&gt;")
)

// StripTags returns the visible text of an HTML string. Entities are decoded
// except &lt; and &gt;, so escaped markup in the source never becomes a tag.
func StripTags(s string) string {
	text := protectAngles.Replace(stripPolicy.Sanitize(s))
	return restoreAngles.Replace(html.UnescapeString(text))
}

// Excerpt strips markup, collapses whitespace runs to single spaces, trims,
// and truncates to max runes, appending Ellipsis when truncated.
func Excerpt(s string, max int) string {
	text := strings.Join(strings.Fields(StripTags(s)), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + Ellipsis
}
