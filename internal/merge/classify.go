package merge

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"m3ukit/internal/playlist"
)

// Final bucket names produced by the normalized policy.
const (
	BucketCCTV      = "央视"
	BucketSatellite = "卫视"
)

const (
	markerCCTV      = "CCTV"
	markerSatellite = "卫视"
)

// unnumberedSortKey places channels without an extractable number after
// every realistically numbered channel.
const unnumberedSortKey = 999

var cctvNumberPattern = regexp2.MustCompile(`(?i)CCTV-?(\d+)`, regexp2.None)

// cctvSortKey extracts the channel number following the CCTV marker, with
// or without a hyphen, for ordering the national-broadcaster bucket.
func cctvSortKey(name string) int {
	m, err := cctvNumberPattern.FindStringMatch(name)
	if err != nil || m == nil {
		return unnumberedSortKey
	}
	n, err := strconv.Atoi(m.GroupByNumber(1).String())
	if err != nil {
		return unnumberedSortKey
	}
	return n
}

// classified buckets every merged record by its winning display name and
// applies the per-bucket sort rules: CCTV by channel number, satellite by
// first-seen order, everything else by (original group, first-seen order).
func (e *Engine) classified() *playlist.Playlist {
	var cctv, satellite, rest []*entry
	for _, key := range e.keyOrder {
		ent := e.channels[key]
		name := ent.rec.Name
		switch {
		case strings.Contains(strings.ToUpper(name), markerCCTV):
			ent.rec.Group = BucketCCTV
			cctv = append(cctv, ent)
		case strings.Contains(name, markerSatellite):
			ent.rec.Group = BucketSatellite
			satellite = append(satellite, ent)
		default:
			ent.rec.Group = ent.originalGroup
			if ent.rec.Group == "" {
				ent.rec.Group = playlist.GroupUnclassified
			}
			rest = append(rest, ent)
		}
	}

	sort.SliceStable(cctv, func(i, j int) bool {
		return cctvSortKey(cctv[i].rec.Name) < cctvSortKey(cctv[j].rec.Name)
	})
	sort.SliceStable(satellite, func(i, j int) bool {
		return satellite[i].rec.OriginOrder < satellite[j].rec.OriginOrder
	})
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].originalGroup != rest[j].originalGroup {
			return rest[i].originalGroup < rest[j].originalGroup
		}
		return rest[i].rec.OriginOrder < rest[j].rec.OriginOrder
	})

	p := &playlist.Playlist{Header: e.header}
	for _, ent := range cctv {
		p.AddRecord(BucketCCTV, ent.rec)
	}
	for _, ent := range satellite {
		p.AddRecord(BucketSatellite, ent.rec)
	}
	for _, ent := range rest {
		p.AddRecord(ent.rec.Group, ent.rec)
	}
	return p
}
