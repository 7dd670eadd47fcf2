// Package source loads playlist text from local files, remote URLs, and
// YAML source lists. Any unreadable source is a hard error: callers abort
// the run before writing output.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one named playlist source from a sources file.
type Entry struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

type sourcesFile struct {
	Sources []Entry `yaml:"sources"`
}

// LoadEntries parses a YAML sources file.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources file %q: %w", path, err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file %q lists no sources", path)
	}
	for i, e := range f.Sources {
		if strings.TrimSpace(e.Location) == "" {
			return nil, fmt.Errorf("sources file %q: entry %d has no location", path, i+1)
		}
	}
	return f.Sources, nil
}

// IsRemote reports whether location is an http(s) URL rather than a path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Loader fetches playlist text from local paths or remote URLs.
type Loader struct {
	client *http.Client
}

// NewLoader returns a Loader whose remote fetches are bounded by timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{client: &http.Client{Timeout: timeout}}
}

// Load returns the raw playlist text at location.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return l.fetch(ctx, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read source %q: %w", location, err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch source %q: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read source %q: %w", url, err)
	}
	return data, nil
}
