package playlist_test

import (
	"strings"
	"testing"

	"m3ukit/internal/playlist"
)

func readAll(t *testing.T, input string) (string, []*playlist.Record) {
	t.Helper()
	header, records, err := playlist.ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return header, records
}

func TestReaderBasicRecord(t *testing.T) {
	input := `#EXTM3U
#EXTINF:-1 tvg-id="c1" group-title="新闻",CCTV-13
http://example.com/cctv13.m3u8
`
	header, records := readAll(t, input)
	if header != "#EXTM3U" {
		t.Fatalf("unexpected header %q", header)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Name != "CCTV-13" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Group != "新闻" {
		t.Errorf("group = %q", rec.Group)
	}
	if got := rec.URLs.Ordered(); len(got) != 1 || got[0] != "http://example.com/cctv13.m3u8" {
		t.Errorf("urls = %v", got)
	}
}

func TestReaderCollectsConfigLinesAndExtraURLs(t *testing.T) {
	input := `#EXTINF:-1,湖南卫视
#EXTVLCOPT:http-user-agent=test
#EXTVLCOPT:network-caching=1000
http://a.example.com/1.m3u8
http://b.example.com/1.m3u8
#EXTINF:-1,浙江卫视
http://a.example.com/2.m3u8
`
	_, records := readAll(t, input)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if len(first.ConfigLines) != 2 {
		t.Fatalf("config lines = %v", first.ConfigLines)
	}
	if first.URLs.Len() != 2 {
		t.Fatalf("expected both consecutive addresses on one record, got %v", first.URLs.Ordered())
	}
	if records[1].Name != "浙江卫视" {
		t.Errorf("second record name = %q", records[1].Name)
	}
}

func TestReaderDiscardsRecordWithoutAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "marker before address",
			input: `#EXTINF:-1,丢失频道
#EXTINF:-1,正常频道
http://example.com/ok.m3u8
`,
			want: []string{"正常频道"},
		},
		{
			name: "end of input before address",
			input: `#EXTINF:-1,正常频道
http://example.com/ok.m3u8
#EXTINF:-1,尾部丢失
#EXTVLCOPT:something
`,
			want: []string{"正常频道"},
		},
		{
			name:  "metadata only",
			input: "#EXTINF:-1,孤立频道\n",
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, records := readAll(t, tc.input)
			if len(records) != len(tc.want) {
				t.Fatalf("got %d records, want %d", len(records), len(tc.want))
			}
			for i, name := range tc.want {
				if records[i].Name != name {
					t.Errorf("record %d name = %q, want %q", i, records[i].Name, name)
				}
			}
		})
	}
}

func TestReaderDefaultsGroupWhenAttributeAbsent(t *testing.T) {
	input := "#EXTINF:-1 tvg-id=\"x\",某频道\nhttp://example.com/x.ts\n"
	_, records := readAll(t, input)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Group != playlist.GroupUnclassified {
		t.Errorf("group = %q, want sentinel", records[0].Group)
	}
}

func TestReaderIgnoresBlankLinesAndStrayContent(t *testing.T) {
	input := "\n\nhttp://stray.example.com/x.ts\n# random comment\n\n#EXTINF:-1,频道\n\nhttp://example.com/x.ts\n\n"
	header, records := readAll(t, input)
	if header != "" {
		t.Errorf("header = %q, want empty", header)
	}
	if len(records) != 1 || records[0].URLs.Len() != 1 {
		t.Fatalf("unexpected records: %d", len(records))
	}
}

func TestReaderKeepsFirstHeaderOnly(t *testing.T) {
	input := "#EXTM3U x-tvg-url=\"http://epg.example.com\"\n#EXTM3U\n#EXTINF:-1,频道\nhttp://example.com/x.ts\n"
	header, _ := readAll(t, input)
	if header != `#EXTM3U x-tvg-url="http://epg.example.com"` {
		t.Errorf("header = %q", header)
	}
}

func TestReaderRejectsNonAddressTextAfterAddress(t *testing.T) {
	input := `#EXTINF:-1,CCTV-13
http://a.example.com/13.m3u8
this is not an address
http://stray.example.com/13.m3u8
#EXTINF:-1,CCTV-5
http://a.example.com/5.m3u8
`
	_, records := readAll(t, input)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records[0].URLs.Ordered(); len(got) != 1 || got[0] != "http://a.example.com/13.m3u8" {
		t.Fatalf("URL set = %v, want only the scheme-prefixed address", got)
	}
	if records[1].Name != "CCTV-5" {
		t.Errorf("record after stray text = %q", records[1].Name)
	}
}
