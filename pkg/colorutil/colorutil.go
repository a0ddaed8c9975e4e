// Package colorutil provides the small set of hex color operations used to
// derive design tokens from a site's brand palette.
package colorutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var hexPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// IsValid reports whether s is a hash-prefixed 3 or 6 digit hex color.
func IsValid(s string) bool {
	return hexPattern.MatchString(s)
}

// Darken shifts every channel of a 6-digit hex color toward black by
// round(255*fraction), clamped to [0,255]. The input is not validated;
// callers are expected to check with IsValid first.
func Darken(hex string, fraction float64) string {
	return shift(hex, -amount(fraction))
}

// Lighten shifts every channel of a 6-digit hex color toward white by
// round(255*fraction), clamped to [0,255]. Same validation caveat as Darken.
func Lighten(hex string, fraction float64) string {
	return shift(hex, amount(fraction))
}

func amount(fraction float64) int {
	return int(math.Round(255 * fraction))
}

func shift(hex string, delta int) string {
	r := channel(hex, 1) + delta
	g := channel(hex, 3) + delta
	b := channel(hex, 5) + delta
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func channel(hex string, offset int) int {
	if offset+2 > len(hex) {
		return 0
	}
	v, err := strconv.ParseInt(hex[offset:offset+2], 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
