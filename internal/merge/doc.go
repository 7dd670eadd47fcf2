// Package merge accumulates channel records from one or more parsed
// playlist sources under a single identity policy and produces the final
// ordered document.
//
// The exact policy merges only records whose display name and group match
// verbatim and reproduces each source's local relative ordering of newly
// introduced channels. The normalized policy merges records cross-group by
// a normalized form of the display name, then classifies survivors into
// final buckets with per-bucket sort rules.
//
// An Engine owns exactly one merge run; there is no shared state between
// runs and none of its operations are safe for concurrent use.
package merge
