package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug turns a team name into its URL identifier: lowercased, runs
// of anything non-alphanumeric collapsed to a single dash, edges trimmed.
func GenerateSlug(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
