package catalog

import (
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify maps a display name to its URL-safe identifier: lowercase, trimmed,
// everything outside [a-z0-9 space -] dropped, whitespace runs and hyphen runs
// collapsed to a single hyphen. Pure and idempotent; renaming an entity
// re-derives its slug, so public URLs follow the name.
//
// A result of "" means the name has no usable characters; callers must reject
// such names before writing.
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "-")
}
