package merge_test

import (
	"strings"
	"testing"

	"m3ukit/internal/merge"
	"m3ukit/internal/playlist"
)

func TestClassificationBuckets(t *testing.T) {
	src := `#EXTINF:-1 group-title="体育",CCTV-5
http://x/5
#EXTINF:-1 group-title="地方",湖南卫视
http://x/hn
#EXTINF:-1 group-title="影视",凤凰中文
http://x/fh
#EXTINF:-1,无分组频道
http://x/none
`
	e := merge.NewEngine(merge.PolicyNormalized)
	e.Add(parse(t, src))
	p := e.Playlist()

	cctv := findGroup(t, p, merge.BucketCCTV)
	if len(cctv.Records) != 1 || cctv.Records[0].Name != "CCTV-5" {
		t.Errorf("CCTV bucket = %v", names(cctv))
	}
	sat := findGroup(t, p, merge.BucketSatellite)
	if len(sat.Records) != 1 || sat.Records[0].Name != "湖南卫视" {
		t.Errorf("satellite bucket = %v", names(sat))
	}
	if g := findGroup(t, p, "影视"); len(g.Records) != 1 {
		t.Errorf("original group bucket = %v", names(g))
	}
	if g := findGroup(t, p, playlist.GroupUnclassified); len(g.Records) != 1 {
		t.Errorf("sentinel bucket = %v", names(g))
	}
}

func TestClassificationIsCaseInsensitive(t *testing.T) {
	src := "#EXTINF:-1,cctv风云音乐\nhttp://x/fy\n"
	e := merge.NewEngine(merge.PolicyNormalized)
	e.Add(parse(t, src))

	g := findGroup(t, e.Playlist(), merge.BucketCCTV)
	if len(g.Records) != 1 {
		t.Fatalf("lowercase marker not classified: %v", names(g))
	}
}

func TestCCTVBucketNumericOrder(t *testing.T) {
	src := `#EXTINF:-1,CCTV13
http://x/13
#EXTINF:-1,CCTV-5
http://x/5
#EXTINF:-1,CCTV风云剧场
http://x/fy
#EXTINF:-1,CCTV-1
http://x/1
`
	e := merge.NewEngine(merge.PolicyNormalized)
	e.Add(parse(t, src))

	g := findGroup(t, e.Playlist(), merge.BucketCCTV)
	got := names(g)
	want := []string{"CCTV-1", "CCTV-5", "CCTV13", "CCTV风云剧场"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSatelliteBucketKeepsOriginOrder(t *testing.T) {
	src := `#EXTINF:-1,浙江卫视
http://x/zj
#EXTINF:-1,湖南卫视
http://x/hn
#EXTINF:-1,东方卫视
http://x/df
`
	e := merge.NewEngine(merge.PolicyNormalized)
	e.Add(parse(t, src))

	g := findGroup(t, e.Playlist(), merge.BucketSatellite)
	got := names(g)
	want := []string{"浙江卫视", "湖南卫视", "东方卫视"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestCatchAllSortsByGroupThenOrigin(t *testing.T) {
	src := `#EXTINF:-1 group-title="b",b-第二
http://x/b2
#EXTINF:-1 group-title="a",a-第一
http://x/a1
#EXTINF:-1 group-title="b",b-第一
http://x/b1
`
	e := merge.NewEngine(merge.PolicyNormalized)
	e.Add(parse(t, src))

	p := e.Playlist()
	if p.Groups[0].Title != "a" || p.Groups[1].Title != "b" {
		t.Fatalf("bucket order = %q, %q", p.Groups[0].Title, p.Groups[1].Title)
	}
	b := findGroup(t, p, "b")
	got := names(b)
	want := []string{"b-第二", "b-第一"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("within-group order = %v, want %v (origin order)", got, want)
	}
}

func TestClassificationStampsFinalBucketOnGroupField(t *testing.T) {
	src := "#EXTINF:-1 group-title=\"影视\",CCTV-6\nhttp://x/6\n"
	e := merge.NewEngine(merge.PolicyNormalized)
	e.Add(parse(t, src))

	rec := e.Playlist().Records()[0]
	if rec.Group != merge.BucketCCTV {
		t.Errorf("Group = %q, want final bucket name", rec.Group)
	}
}
