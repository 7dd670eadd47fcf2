package merge

import (
	"strings"

	"golang.org/x/text/cases"
)

// categorySuffix marks the long form of a channel name ("湖南卫视台"
// versus "湖南卫视"). Normalization strips at most one trailing suffix.
const categorySuffix = "台"

// Normalize reduces a display name to its identity under the normalized
// policy: hyphens removed, one trailing category suffix stripped,
// surrounding whitespace trimmed, and the result case-folded so that
// "cctv-1" and "CCTV1" collapse to the same key.
func Normalize(name string) string {
	s := strings.ReplaceAll(name, "-", "")
	s = strings.TrimSuffix(s, categorySuffix)
	s = strings.TrimSpace(s)
	return cases.Fold().String(s)
}

// PreferredForm reports whether the original spelling of name is the
// canonical variant: it contains a hyphen or ends with the category
// suffix. Used only to break display-name ties when records merge.
func PreferredForm(name string) bool {
	return strings.Contains(name, "-") || strings.HasSuffix(name, categorySuffix)
}
