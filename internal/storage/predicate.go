package storage

import "github.com/dmitrijs2005/dbkeeper/internal/record"

// Wildcard is the query term that matches every record.
const Wildcard = "*"

// Predicate selects records during a scan.
type Predicate func(record.Record) bool

// MatchAll accepts every record.
func MatchAll(record.Record) bool { return true }

// Exact matches records whose stored name equals term. The comparison is
// case-sensitive and limited to the record.NameSize usable name bytes, so a
// term longer than that matches the truncated form it would be stored as.
func Exact(term string) Predicate {
	term = record.TruncateName(term)
	return func(r record.Record) bool {
		return r.Name == term
	}
}

// Query returns the predicate used by the console query command:
// MatchAll for the wildcard term, Exact otherwise.
func Query(term string) Predicate {
	if term == Wildcard {
		return MatchAll
	}
	return Exact(term)
}
