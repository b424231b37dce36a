package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// CleanText strips all HTML markup from user-supplied text. The board stores
// and serves plain text only. Sanitize escapes what it keeps, so unescape to
// get the literal characters back.
func CleanText(text string) string {
	return html.UnescapeString(strict.Sanitize(strings.TrimSpace(text)))
}

// ClampRunes truncates to at most max runes, never splitting a multi-byte
// character.
func ClampRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
