package main

import (
	"strings"
	"testing"

	"m3ukit/internal/playlist"
)

func TestRenderPlaylistStats(t *testing.T) {
	_, records, err := playlist.ReadAll(strings.NewReader(`#EXTINF:-1 group-title="央视",CCTV-1
#EXTVLCOPT:network-caching=1000
http://a/1
http://b/1
#EXTINF:-1 group-title="卫视",湖南卫视
http://a/2
`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	p := &playlist.Playlist{}
	for _, rec := range records {
		p.AddRecord(rec.Group, rec)
	}

	out := renderPlaylistStats(p)
	for _, want := range []string{"央视", "卫视", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in table:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var totalLine string
	for _, line := range lines {
		if strings.Contains(line, "Total") {
			totalLine = line
		}
	}
	// total row: 2 channels, 3 addresses, 1 multi-address, 1 with config
	for _, want := range []string{"2", "3", "1"} {
		if !strings.Contains(totalLine, want) {
			t.Errorf("total row %q missing %q", totalLine, want)
		}
	}
}
