package playlist

import "strings"

// extinfMarker opens every channel metadata line.
const extinfMarker = "#EXTINF"

// groupTitleAttr is the attribute naming a channel's category.
const groupTitleAttr = "group-title"

// Extinf is the parsed form of one channel metadata line.
type Extinf struct {
	// Raw is the full original line.
	Raw string
	// Name is the display name after the final comma, trimmed. Empty when
	// the line has no comma.
	Name string
}

// IsExtinf reports whether line opens a channel record.
func IsExtinf(line string) bool {
	return strings.HasPrefix(line, extinfMarker)
}

// ParseExtinf parses a metadata line. ok is false when line is not an
// EXTINF line at all; a marker line with missing pieces still parses, the
// absent pieces are simply empty.
func ParseExtinf(line string) (inf Extinf, ok bool) {
	if !IsExtinf(line) {
		return Extinf{}, false
	}
	inf.Raw = line
	if i := strings.LastIndexByte(line, ','); i >= 0 {
		inf.Name = strings.TrimSpace(line[i+1:])
	}
	return inf, true
}

// Attr returns the quoted value of a key="value" attribute. ok is false
// when the attribute is absent from the line, which is distinct from an
// attribute that is present but empty.
func (inf Extinf) Attr(key string) (value string, ok bool) {
	return attrValue(inf.Raw, key)
}

// Group returns the group-title attribute, or GroupUnclassified when the
// line carries none.
func (inf Extinf) Group() string {
	if v, ok := inf.Attr(groupTitleAttr); ok {
		return v
	}
	return GroupUnclassified
}

func attrValue(line, key string) (string, bool) {
	marker := key + `="`
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	rest := line[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// WithGroupTitle returns line with its group-title attribute rewritten to
// group. When the attribute is absent it is inserted before the trailing
// display name, or appended when the line has no display name either.
func WithGroupTitle(line, group string) string {
	marker := groupTitleAttr + `="`
	if i := strings.Index(line, marker); i >= 0 {
		rest := line[i+len(marker):]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			return line[:i] + marker + group + rest[j:]
		}
	}
	attr := ` ` + groupTitleAttr + `="` + group + `"`
	if i := strings.LastIndexByte(line, ','); i >= 0 {
		return line[:i] + attr + line[i:]
	}
	return line + attr
}
