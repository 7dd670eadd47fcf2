// Package match implements the keyword predicate language used to extract
// or remove channel records.
//
// An expression is a plain substring test, a "&&" conjunction, or a "||"
// disjunction of substring tests. A filter pairs one expression over the
// metadata line with one over the address line and combines them in AND or
// OR mode. Removal is the logical complement of extraction over the same
// filter, not a separate algorithm.
package match

import (
	"strings"

	"m3ukit/internal/playlist"
)

type operator int

const (
	opNever operator = iota
	opOne
	opAll
	opAny
)

// Expression is one compiled keyword expression.
type Expression struct {
	op    operator
	terms []string
}

// Compile parses a raw keyword expression. Surrounding whitespace and one
// layer of double quotes are stripped. An expression containing "&&" is a
// conjunction of its non-empty sub-terms; otherwise one containing "||"
// is a disjunction; otherwise it is a single substring test. "&&" binds
// first, so a mixed expression such as `A&&B||C` is a conjunction whose
// second term is the literal text `B||C`. An expression that is empty
// after stripping never matches anything.
func Compile(raw string) Expression {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		return Expression{op: opNever}
	}

	switch {
	case strings.Contains(s, "&&"):
		terms := splitTerms(s, "&&")
		if len(terms) == 0 {
			return Expression{op: opNever}
		}
		return Expression{op: opAll, terms: terms}
	case strings.Contains(s, "||"):
		terms := splitTerms(s, "||")
		if len(terms) == 0 {
			return Expression{op: opNever}
		}
		return Expression{op: opAny, terms: terms}
	default:
		return Expression{op: opOne, terms: []string{s}}
	}
}

func splitTerms(s, sep string) []string {
	parts := strings.Split(s, sep)
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

// Empty reports whether the expression can never match.
func (e Expression) Empty() bool {
	return e.op == opNever
}

// Match reports whether text satisfies the expression.
func (e Expression) Match(text string) bool {
	switch e.op {
	case opOne:
		return strings.Contains(text, e.terms[0])
	case opAll:
		for _, t := range e.terms {
			if !strings.Contains(text, t) {
				return false
			}
		}
		return true
	case opAny:
		for _, t := range e.terms {
			if strings.Contains(text, t) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Mode selects how the two field predicates of a Filter combine.
type Mode int

const (
	// ModeAnd requires the metadata expression and the address expression
	// to both hold.
	ModeAnd Mode = iota
	// ModeOr requires either to hold.
	ModeOr
)

// Filter pairs a metadata-line expression with an address-line expression.
type Filter struct {
	Info Expression
	URL  Expression
	Mode Mode
}

// NewFilter compiles the two raw keyword expressions of a filter.
func NewFilter(infoExpr, urlExpr string, mode Mode) Filter {
	return Filter{
		Info: Compile(infoExpr),
		URL:  Compile(urlExpr),
		Mode: mode,
	}
}

// Matches evaluates the filter against a record. The metadata expression
// is tested against the raw #EXTINF line; the address expression matches
// when any of the record's addresses satisfies it.
func (f Filter) Matches(rec *playlist.Record) bool {
	infoOK := f.Info.Match(rec.Info)
	if f.Mode == ModeAnd && !infoOK {
		return false
	}
	if f.Mode == ModeOr && infoOK {
		return true
	}

	for _, u := range rec.URLs.Ordered() {
		if f.URL.Match(u) {
			return true
		}
	}
	return false
}
