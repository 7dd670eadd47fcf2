package playlist

import "testing"

func TestParseExtinf(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ok       bool
		wantName string
	}{
		{"plain", "#EXTINF:-1,CCTV-1", true, "CCTV-1"},
		{"attributes", `#EXTINF:-1 tvg-id="c" group-title="央视",CCTV-1 综合`, true, "CCTV-1 综合"},
		{"commas in attributes", `#EXTINF:-1 tvg-name="a,b",最后名称`, true, "最后名称"},
		{"no comma", "#EXTINF:-1", true, ""},
		{"trailing spaces", "#EXTINF:-1,名称   ", true, "名称"},
		{"not extinf", "http://example.com/x.ts", false, ""},
		{"directive", "#EXTVLCOPT:foo", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inf, ok := ParseExtinf(tc.line)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if inf.Name != tc.wantName {
				t.Errorf("name = %q, want %q", inf.Name, tc.wantName)
			}
		})
	}
}

func TestExtinfAttr(t *testing.T) {
	inf, _ := ParseExtinf(`#EXTINF:-1 tvg-id="" group-title="体育",频道`)

	if v, ok := inf.Attr("group-title"); !ok || v != "体育" {
		t.Errorf("group-title = %q, %v", v, ok)
	}
	// Present-but-empty is distinct from absent.
	if v, ok := inf.Attr("tvg-id"); !ok || v != "" {
		t.Errorf("tvg-id = %q, %v", v, ok)
	}
	if _, ok := inf.Attr("tvg-logo"); ok {
		t.Error("expected tvg-logo to be absent")
	}
}

func TestExtinfGroupDefault(t *testing.T) {
	inf, _ := ParseExtinf("#EXTINF:-1,频道")
	if g := inf.Group(); g != GroupUnclassified {
		t.Errorf("group = %q", g)
	}
}

func TestWithGroupTitle(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			"rewrite existing",
			`#EXTINF:-1 group-title="影视",CCTV-6`,
			`#EXTINF:-1 group-title="央视",CCTV-6`,
		},
		{
			"insert before name",
			`#EXTINF:-1 tvg-id="c6",CCTV-6`,
			`#EXTINF:-1 tvg-id="c6" group-title="央视",CCTV-6`,
		},
		{
			"no display name",
			`#EXTINF:-1`,
			`#EXTINF:-1 group-title="央视"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithGroupTitle(tc.line, "央视"); got != tc.want {
				t.Errorf("got  %q\nwant %q", got, tc.want)
			}
		})
	}
}
