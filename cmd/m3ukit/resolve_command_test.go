package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestResolveRewritesRedirectedAddresses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hop":
			http.Redirect(w, r, "/final.m3u8", http.StatusFound)
		case "/final.m3u8":
			w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		case "/direct":
			w.Header().Set("Content-Type", "video/mp4")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	input := writeTempPlaylist(t, "in.m3u", `#EXTM3U
#EXTINF:-1 group-title="央视",CCTV-1
`+srv.URL+`/hop
#EXTINF:-1 group-title="卫视",湖南卫视
`+srv.URL+`/direct
`)
	output := filepath.Join(t.TempDir(), "out.m3u")

	stdout, err := runCLI(t, "resolve", "--input", input, "--output", output, "--workers", "2", "--retries", "0")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, stdout, "Resolved 2 of 2 addresses")

	got := readFile(t, output)
	requireContains(t, got, srv.URL+"/final.m3u8")
	requireNotContains(t, got, srv.URL+"/hop")
	requireContains(t, got, srv.URL+"/direct")
	requireContains(t, got, "#EXTINF:-1 group-title=\"央视\",CCTV-1")
}

func TestResolveLeavesFailuresUntouched(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	input := writeTempPlaylist(t, "in.m3u", `#EXTINF:-1,测试
`+srv.URL+`/gone
`)
	output := filepath.Join(t.TempDir(), "out.m3u")

	_, err := runCLI(t, "resolve", "--input", input, "--output", output, "--retries", "0")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, readFile(t, output), srv.URL+"/gone")
}

func TestResolveErrorsWithoutAddresses(t *testing.T) {
	input := writeTempPlaylist(t, "in.m3u", "#EXTM3U\n")
	output := filepath.Join(t.TempDir(), "out.m3u")

	_, err := runCLI(t, "resolve", "--input", input, "--output", output)
	if err == nil {
		t.Fatal("expected error for playlist without addresses")
	}
}

func TestResolveTrimsIndentedAddressLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/hop" {
			http.Redirect(w, r, "/final.m3u8", http.StatusMovedPermanently)
			return
		}
		w.Header().Set("Content-Type", "application/x-mpegurl")
	}))
	defer srv.Close()

	input := writeTempPlaylist(t, "in.m3u", "#EXTM3U\n#EXTINF:-1,测试\n  "+srv.URL+"/hop  \n")
	output := filepath.Join(t.TempDir(), "out.m3u")

	stdout, err := runCLI(t, "resolve", "--input", input, "--output", output, "--retries", "0")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, stdout, "Resolved 1 of 1 addresses")
	requireContains(t, readFile(t, output), srv.URL+"/final.m3u8")
}
