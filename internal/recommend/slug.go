package recommend

import (
	"regexp"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Slug converts a commander display name to its EDHREC page slug:
// "Atraxa, Praetors' Voice" becomes "atraxa-praetors-voice".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugDashes.ReplaceAllString(s, "-")
}

// colorOrder is the canonical WUBRG order.
const colorOrder = "WUBRG"

// ColorlessKey is the lookup key for an empty color identity.
const ColorlessKey = "colorless"

// CanonicalColors dedupes colors and sorts them into WUBRG order. Symbols are
// matched case-insensitively; ok is false if any symbol is outside the alphabet.
func CanonicalColors(colors []string) (sorted []string, ok bool) {
	var seen [len(colorOrder)]bool
	for _, c := range colors {
		s := strings.ToUpper(strings.TrimSpace(c))
		idx := strings.Index(colorOrder, s)
		if len(s) != 1 || idx < 0 {
			return nil, false
		}
		seen[idx] = true
	}
	sorted = []string{}
	for i, present := range seen {
		if present {
			sorted = append(sorted, colorOrder[i:i+1])
		}
	}
	return sorted, true
}

// ColorKey returns the EDHREC key for a color identity, e.g. ["G","W"] -> "wg".
func ColorKey(colors []string) (string, bool) {
	sorted, ok := CanonicalColors(colors)
	if !ok {
		return "", false
	}
	if len(sorted) == 0 {
		return ColorlessKey, true
	}
	return strings.ToLower(strings.Join(sorted, "")), true
}
