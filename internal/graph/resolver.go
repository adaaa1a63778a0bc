package graph

import (
	"fmt"
	"sort"
	"strings"
)

// MatchPolicy selects how FindPersons compares a query with display names.
type MatchPolicy uint8

const (
	// MatchSubstring matches names containing the query, case-sensitively.
	MatchSubstring MatchPolicy = iota
	// MatchExact matches names equal to the query.
	MatchExact
)

func (p MatchPolicy) String() string {
	if p == MatchExact {
		return "exact"
	}
	return "substring"
}

// ParseMatchPolicy converts "substring" or "exact" into a MatchPolicy. An
// empty string selects MatchSubstring.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "exact":
		return MatchExact, nil
	default:
		return MatchSubstring, fmt.Errorf("unknown match policy %q", s)
	}
}

// FindPersons returns the ids of persons whose display name matches query,
// sorted by id. An empty query matches nothing.
func (g *Graph) FindPersons(query string, policy MatchPolicy) []string {
	if query == "" {
		return nil
	}
	var ids []string
	for id, name := range g.persons {
		if matches(name, query, policy) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func matches(name, query string, policy MatchPolicy) bool {
	if policy == MatchExact {
		return name == query
	}
	return strings.Contains(name, query)
}
