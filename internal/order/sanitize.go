package order

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackTitle is used when sanitization leaves nothing printable.
const fallbackTitle = "TRACK"

var (
	spaceOrHyphenRun = regexp.MustCompile(`[\s\-]+`)
	unsafeChars      = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	underscoreRun    = regexp.MustCompile(`_+`)
)

// asciiFold decomposes accented characters and drops their combining marks,
// turning "Déjà" into "Deja".
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// SanitizeTitle reduces a title to an ASCII-only fragment that any FAT
// filesystem and head unit accepts: accents folded away, whitespace and
// hyphens collapsed to single underscores, everything else dropped, then
// truncated to maxLen bytes. A maxLen of 0 disables truncation.
func SanitizeTitle(title string, maxLen int) string {
	if folded, _, err := transform.String(asciiFold, title); err == nil {
		title = folded
	}

	s := spaceOrHyphenRun.ReplaceAllString(title, "_")
	s = unsafeChars.ReplaceAllString(s, "")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if s == "" {
		return fallbackTitle
	}
	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "_")
	}
	return s
}
