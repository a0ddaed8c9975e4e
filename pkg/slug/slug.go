// Package slug derives URL and filesystem safe identifiers from
// user-supplied names.
package slug

import (
	"regexp"
	"strings"
)

const maxSiteIDLength = 30

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases text, collapses every run of non-alphanumeric characters
// into a single hyphen and strips leading/trailing hyphens.
func Make(text string) string {
	text = strings.ToLower(text)
	text = nonAlnum.ReplaceAllString(text, "-")
	return strings.Trim(text, "-")
}

// SiteID derives a site identifier from a site name: the Make slug
// truncated to 30 characters, with any hyphen exposed by the truncation
// stripped. Applying SiteID to its own output returns the same string.
func SiteID(name string) string {
	id := Make(name)
	if len(id) > maxSiteIDLength {
		id = strings.Trim(id[:maxSiteIDLength], "-")
	}
	return id
}
