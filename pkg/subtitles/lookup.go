package subtitles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

var ErrShowNotFound = errors.New("show not found in subtitle catalog")

// AmbiguousMatchError is returned when a show name matches more than one catalog entry
type AmbiguousMatchError struct {
	Name       string
	Candidates []Entry
}

func (e *AmbiguousMatchError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("%q matches %d shows: %s", e.Name, len(e.Candidates), strings.Join(names, ", "))
}

type MatchKind int

const (
	NotFound MatchKind = iota
	Found
	Ambiguous
)

func (k MatchKind) String() string {
	switch k {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Match is the result of looking a show up in the catalog.
// Entry is set when Kind is Found. Candidates are ranked closest first; for
// NotFound they hold loose suggestions.
type Match struct {
	Kind       MatchKind
	Entry      Entry
	Candidates []Entry
}

// Lookup finds name in entries. A case-insensitive exact match wins, otherwise
// the name must be a case-insensitive substring of exactly one entry.
func Lookup(name string, entries []Entry) Match {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(name))
	if query == "" {
		return Match{Kind: NotFound}
	}

	var contains []Entry
	for _, e := range entries {
		folded := fold.String(e.Name)
		if folded == query {
			return Match{Kind: Found, Entry: e}
		}
		if strings.Contains(folded, query) {
			contains = append(contains, e)
		}
	}

	switch len(contains) {
	case 0:
		var suggestions []Entry
		for _, e := range entries {
			if fuzzy.MatchNormalizedFold(query, e.Name) {
				suggestions = append(suggestions, e)
			}
		}
		return Match{Kind: NotFound, Candidates: rank(query, suggestions)}
	case 1:
		return Match{Kind: Found, Entry: contains[0]}
	default:
		return Match{Kind: Ambiguous, Candidates: rank(query, contains)}
	}
}

// rank orders entries by fuzzy distance to query, then by name
func rank(query string, entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}

	distance := make(map[string]int, len(entries))
	for _, e := range entries {
		distance[e.Name] = fuzzy.RankMatchNormalizedFold(query, e.Name)
	}

	ranked := append([]Entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := distance[ranked[i].Name], distance[ranked[j].Name]
		if di != dj {
			return di < dj
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}
