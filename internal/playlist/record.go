package playlist

// Header is the playlist file marker line prefix.
const Header = "#EXTM3U"

// GroupUnclassified is the group assigned to channels whose metadata line
// carries no group-title attribute.
const GroupUnclassified = "其他"

// Record is one channel entry. URLs is never nil and holds at least one
// address for every record produced by a Reader.
type Record struct {
	// Info is the raw #EXTINF line, attributes included.
	Info string
	// Name is the display name after the final comma of the Info line.
	Name string
	// Group is the group-title attribute value, or GroupUnclassified.
	// The normalized merge policy rewrites it to the final bucket name.
	Group string
	// ConfigLines are the directive lines between the Info line and the
	// first address, in order. Merging concatenates them without dedup.
	ConfigLines []string
	// URLs is the insertion-ordered set of stream addresses.
	URLs *URLSet
	// OriginOrder is the first-seen sequence index assigned during a
	// merge run; it is zero until the record enters an accumulator.
	OriginOrder int
}

// Playlist is a serialized-ready document: the retained header (empty when
// no source supplied one) and the final ordered group buckets.
type Playlist struct {
	Header string
	Groups []*Group
}

// Group is one output bucket: a title and its ordered member records.
type Group struct {
	Title   string
	Records []*Record
}

// AddRecord appends rec to the group named title, creating the group at
// the end of the bucket order on first use.
func (p *Playlist) AddRecord(title string, rec *Record) {
	for _, g := range p.Groups {
		if g.Title == title {
			g.Records = append(g.Records, rec)
			return
		}
	}
	p.Groups = append(p.Groups, &Group{Title: title, Records: []*Record{rec}})
}

// Records flattens the group buckets into one ordered slice.
func (p *Playlist) Records() []*Record {
	var out []*Record
	for _, g := range p.Groups {
		out = append(out, g.Records...)
	}
	return out
}
