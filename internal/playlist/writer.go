package playlist

import (
	"bufio"
	"io"
)

// WriteOptions control serialization.
type WriteOptions struct {
	// StripConfig drops directive lines from the output.
	StripConfig bool
	// KeepOrder emits addresses in first-seen order instead of the
	// default deterministic lexicographic order.
	KeepOrder bool
	// RewriteGroup rewrites (or inserts) each record's group-title
	// attribute to the record's Group field. The normalized merge policy
	// uses this to stamp the final bucket name onto the metadata line.
	RewriteGroup bool
}

// Write renders a merged document: header first when present, then every
// group bucket in order. Exactly one blank line separates consecutive
// records; there is no trailing blank line.
func Write(w io.Writer, p *Playlist, opts WriteOptions) error {
	return WriteRecords(w, p.Header, p.Records(), opts)
}

// WriteRecords renders a flat record sequence with the same layout rules
// as Write. Paths that never group records (extraction) use it directly.
func WriteRecords(w io.Writer, header string, records []*Record, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	if header != "" {
		if _, err := bw.WriteString(header + "\n"); err != nil {
			return err
		}
	}

	for i, rec := range records {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if err := writeRecord(bw, rec, opts); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(bw *bufio.Writer, rec *Record, opts WriteOptions) error {
	info := rec.Info
	if opts.RewriteGroup {
		info = WithGroupTitle(info, rec.Group)
	}
	if _, err := bw.WriteString(info + "\n"); err != nil {
		return err
	}
	if !opts.StripConfig {
		for _, line := range rec.ConfigLines {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return err
			}
		}
	}
	urls := rec.URLs.Sorted()
	if opts.KeepOrder {
		urls = rec.URLs.Ordered()
	}
	for _, u := range urls {
		if _, err := bw.WriteString(u + "\n"); err != nil {
			return err
		}
	}
	return nil
}
