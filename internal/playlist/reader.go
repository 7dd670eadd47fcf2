package playlist

import (
	"bufio"
	"io"
	"strings"
)

// Reader yields channel records from an M3U document in source order. It
// follows the bufio.Scanner idiom:
//
//	r := playlist.NewReader(f)
//	for r.Scan() {
//		rec := r.Record()
//		...
//	}
//	if err := r.Err(); err != nil { ... }
//
// The sequence is lazy, finite, and not restartable. Blank lines are
// insignificant; every line is whitespace-trimmed before inspection. A
// record opens at an EXTINF line, collects any further "#" lines as
// directives, and closes at the first non-"#" line, the address.
// Consecutive address lines after that all belong to the same record.
// An EXTINF line reached before any address discards the record in
// progress and starts a new one; so does end of input.
type Reader struct {
	scanner  *bufio.Scanner
	header   string
	rec      *Record
	pushback string
	pushed   bool
	done     bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc}
}

// Scan advances to the next complete record. It returns false at end of
// input or on a read error; Err distinguishes the two.
func (r *Reader) Scan() bool {
	r.rec = nil
	if r.done {
		return false
	}

	var inf Extinf
	var open bool
	var configs []string

	for {
		line, ok := r.next()
		if !ok {
			r.done = true
			// EXTINF with no address: dropped.
			return false
		}

		if parsed, isInf := ParseExtinf(line); isInf {
			// A marker before any address discards the open record and
			// restarts at this line.
			inf = parsed
			open = true
			configs = nil
			continue
		}

		if strings.HasPrefix(line, Header) {
			if r.header == "" {
				r.header = line
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			if open {
				configs = append(configs, line)
			}
			// Stray comments outside a record are insignificant.
			continue
		}

		// An address line.
		if !open {
			// Address with no preceding metadata: insignificant.
			continue
		}

		urls := NewURLSet(line)
		r.collectExtraURLs(urls)
		r.rec = &Record{
			Info:        inf.Raw,
			Name:        inf.Name,
			Group:       inf.Group(),
			ConfigLines: configs,
			URLs:        urls,
		}
		return true
	}
}

// collectExtraURLs consumes consecutive address lines following the one
// that closed the record. The first line that is neither a directive nor
// an address is pushed back; only scheme-prefixed lines enter the set, so
// stray text after a record never becomes an address.
func (r *Reader) collectExtraURLs(urls *URLSet) {
	for {
		line, ok := r.next()
		if !ok {
			return
		}
		if !isAddress(line) {
			r.unread(line)
			return
		}
		urls.Add(line)
	}
}

// isAddress reports whether line starts with a recognized URL scheme.
func isAddress(line string) bool {
	return strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://")
}

// Record returns the record produced by the last successful Scan.
func (r *Reader) Record() *Record {
	return r.rec
}

// Header returns the header line seen so far, or "". It is complete once
// Scan has returned false.
func (r *Reader) Header() string {
	return r.header
}

// Err returns the first read error encountered, if any.
func (r *Reader) Err() error {
	return r.scanner.Err()
}

func (r *Reader) next() (string, bool) {
	if r.pushed {
		r.pushed = false
		return r.pushback, true
	}
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func (r *Reader) unread(line string) {
	r.pushback = line
	r.pushed = true
}

// ReadAll drains a Reader, returning the header and every record.
func ReadAll(src io.Reader) (header string, records []*Record, err error) {
	r := NewReader(src)
	for r.Scan() {
		records = append(records, r.Record())
	}
	if err := r.Err(); err != nil {
		return "", nil, err
	}
	return r.Header(), records, nil
}
