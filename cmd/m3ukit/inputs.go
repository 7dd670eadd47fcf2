package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"m3ukit/internal/config"
	"m3ukit/internal/playlist"
	"m3ukit/internal/source"
)

// loadedSource is one fully parsed input playlist.
type loadedSource struct {
	Name     string
	Location string
	Header   string
	Records  []*playlist.Record
}

// loadPlaylists reads every input playlist up front. Any unreadable source
// aborts the whole run so no output is written from a partial input set.
func loadPlaylists(ctx context.Context, cfg *config.Config, inputs []string, sourcesPath string) ([]loadedSource, error) {
	entries, err := sourceEntries(inputs, sourcesPath)
	if err != nil {
		return nil, err
	}

	loader := source.NewLoader(cfg.FetchTimeout())
	loaded := make([]loadedSource, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name
		if name == "" {
			name = entry.Location
		}
		data, err := loader.Load(ctx, entry.Location)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", name, err)
		}
		header, records, err := playlist.ReadAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse source %s: %w", name, err)
		}
		loaded = append(loaded, loadedSource{
			Name:     name,
			Location: entry.Location,
			Header:   header,
			Records:  records,
		})
	}
	return loaded, nil
}

func sourceEntries(inputs []string, sourcesPath string) ([]source.Entry, error) {
	sourcesPath = strings.TrimSpace(sourcesPath)
	switch {
	case sourcesPath != "" && len(inputs) > 0:
		return nil, errors.New("positional inputs and --sources are mutually exclusive")
	case sourcesPath != "":
		return source.LoadEntries(sourcesPath)
	case len(inputs) > 0:
		entries := make([]source.Entry, 0, len(inputs))
		for _, input := range inputs {
			entries = append(entries, source.Entry{
				Name:     filepath.Base(input),
				Location: input,
			})
		}
		return entries, nil
	default:
		return nil, errors.New("no input playlists: pass file paths or --sources")
	}
}

// localPaths returns the non-remote locations of the given sources, used
// to detect in-place output rewrites.
func localPaths(sources []loadedSource) []string {
	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		if !source.IsRemote(src.Location) {
			paths = append(paths, src.Location)
		}
	}
	return paths
}
