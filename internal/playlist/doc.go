// Package playlist implements the M3U channel record model, a tolerant
// line-oriented reader, and the serializer that renders merged documents
// back to playlist text.
//
// A record is one channel: its raw #EXTINF metadata line, the directive
// lines that followed it, and every stream address associated with it.
// The reader never fails on malformed individual records; an EXTINF line
// with no following address is dropped silently. Only the inability to
// read the underlying source is an error.
package playlist
