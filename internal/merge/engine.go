package merge

import "m3ukit/internal/playlist"

// Policy selects how two records are decided to be the same channel.
type Policy int

const (
	// PolicyExact merges records whose (name, group) match verbatim and
	// preserves each source's relative ordering within its groups.
	PolicyExact Policy = iota
	// PolicyNormalized merges records cross-group by normalized name and
	// classifies the result into final buckets.
	PolicyNormalized
)

// Engine is the accumulator for one merge run. Sources are added in
// processing order; Playlist renders the final document.
type Engine struct {
	policy Policy
	header string

	// Exact policy state: group buckets in first-appearance order.
	groups     map[string]*groupAccum
	groupOrder []string

	// Normalized policy state: one entry per normalized key.
	channels map[string]*entry
	keyOrder []string

	nextOrder int
}

type groupAccum struct {
	title string
	names []string
	index map[string]int
	recs  map[string]*playlist.Record
}

type entry struct {
	rec *playlist.Record
	// originalGroup is the group of the first occurrence; a later
	// preferred-name win does not change it.
	originalGroup string
}

// NewEngine returns an empty accumulator for the given policy.
func NewEngine(policy Policy) *Engine {
	return &Engine{
		policy:   policy,
		groups:   make(map[string]*groupAccum),
		channels: make(map[string]*entry),
	}
}

// SetHeader retains the header of the first source that supplies one.
func (e *Engine) SetHeader(header string) {
	if e.header == "" {
		e.header = header
	}
}

// Add merges one source's records, in source order, into the accumulator.
func (e *Engine) Add(records []*playlist.Record) {
	if e.policy == PolicyExact {
		e.addExact(records)
		return
	}
	e.addNormalized(records)
}

// addExact partitions the source by group, preserving the source's
// internal order, and merges each source-group into the accumulator's
// same-named bucket by exact name match.
func (e *Engine) addExact(records []*playlist.Record) {
	var titles []string
	byGroup := make(map[string][]*playlist.Record)
	for _, rec := range records {
		if _, ok := byGroup[rec.Group]; !ok {
			titles = append(titles, rec.Group)
		}
		byGroup[rec.Group] = append(byGroup[rec.Group], rec)
	}

	for _, title := range titles {
		ga := e.group(title)
		// Tracks the position of the last matched or inserted channel so
		// that channels new to the accumulator keep this source's local
		// relative order without a full re-sort.
		last := -1
		for _, rec := range byGroup[title] {
			if pos, ok := ga.index[rec.Name]; ok {
				existing := ga.recs[rec.Name]
				existing.URLs.AddAll(rec.URLs)
				existing.ConfigLines = append(existing.ConfigLines, rec.ConfigLines...)
				// Last write wins for the metadata line; URLs are never lost.
				existing.Info = rec.Info
				last = pos
				continue
			}
			rec.OriginOrder = e.nextOrder
			e.nextOrder++
			last = ga.insert(last+1, rec)
		}
	}
}

func (e *Engine) group(title string) *groupAccum {
	if ga, ok := e.groups[title]; ok {
		return ga
	}
	ga := &groupAccum{
		title: title,
		index: make(map[string]int),
		recs:  make(map[string]*playlist.Record),
	}
	e.groups[title] = ga
	e.groupOrder = append(e.groupOrder, title)
	return ga
}

// insert places rec at pos in the bucket's order and returns the position.
func (ga *groupAccum) insert(pos int, rec *playlist.Record) int {
	if pos > len(ga.names) {
		pos = len(ga.names)
	}
	ga.names = append(ga.names, "")
	copy(ga.names[pos+1:], ga.names[pos:])
	ga.names[pos] = rec.Name
	for i := pos + 1; i < len(ga.names); i++ {
		ga.index[ga.names[i]] = i
	}
	ga.index[rec.Name] = pos
	ga.recs[rec.Name] = rec
	return pos
}

// addNormalized merges records cross-group by normalized name. URL sets
// union and config lines concatenate unconditionally; the stored display
// name and metadata line yield only to a preferred-form variant.
func (e *Engine) addNormalized(records []*playlist.Record) {
	for _, rec := range records {
		if rec.Name == "" {
			// A nameless channel has no identity to merge under.
			continue
		}
		key := Normalize(rec.Name)
		if ent, ok := e.channels[key]; ok {
			ent.rec.URLs.AddAll(rec.URLs)
			ent.rec.ConfigLines = append(ent.rec.ConfigLines, rec.ConfigLines...)
			if PreferredForm(rec.Name) && !PreferredForm(ent.rec.Name) {
				ent.rec.Name = rec.Name
				ent.rec.Info = rec.Info
			}
			continue
		}
		rec.OriginOrder = e.nextOrder
		e.nextOrder++
		e.channels[key] = &entry{rec: rec, originalGroup: rec.Group}
		e.keyOrder = append(e.keyOrder, key)
	}
}

// Len returns the number of distinct channels accumulated so far.
func (e *Engine) Len() int {
	if e.policy == PolicyExact {
		n := 0
		for _, ga := range e.groups {
			n += len(ga.names)
		}
		return n
	}
	return len(e.channels)
}

// Playlist renders the final merged document. Under the exact policy the
// group buckets appear in first-appearance order with each bucket's
// accumulated member order; under the normalized policy the records are
// classified and sorted into their final buckets.
func (e *Engine) Playlist() *playlist.Playlist {
	if e.policy == PolicyExact {
		p := &playlist.Playlist{Header: e.header}
		for _, title := range e.groupOrder {
			ga := e.groups[title]
			g := &playlist.Group{Title: title, Records: make([]*playlist.Record, 0, len(ga.names))}
			for _, name := range ga.names {
				g.Records = append(g.Records, ga.recs[name])
			}
			p.Groups = append(p.Groups, g)
		}
		return p
	}
	return e.classified()
}
