// Package graph holds the bipartite person/title credit graph and the
// shortest connection search over it.
//
// A Graph is built once (AddPerson, AddTitle and the edge methods) by a single
// goroutine, then frozen. After Freeze it is read-only and any number of
// goroutines may run ShortestPath, FindPersons and Render against it; every
// search keeps its frontier, visited set and parent map private.
package graph

import "fmt"

// Kind distinguishes the two vertex namespaces.
type Kind uint8

const (
	KindPerson Kind = iota
	KindTitle
)

// Opposite returns the kind reached by one hop from k.
func (k Kind) Opposite() Kind {
	if k == KindPerson {
		return KindTitle
	}
	return KindPerson
}

func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindTitle:
		return "title"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Vertex identifies a vertex. Person and title ids may collide as raw
// strings, so the kind is part of the identity.
type Vertex struct {
	ID   string
	Kind Kind
}

func (v Vertex) String() string {
	return v.Kind.String() + ":" + v.ID
}

// Stats summarises the size of a graph.
type Stats struct {
	Persons int
	Titles  int
	Credits int
}

// Graph stores display names per vertex kind and adjacency lists for both
// edge directions.
type Graph struct {
	persons map[string]string
	titles  map[string]string

	personTitles map[string][]string
	titlePersons map[string][]string

	frozen bool
}

// New returns an empty, mutable graph.
func New() *Graph {
	return &Graph{
		persons:      make(map[string]string),
		titles:       make(map[string]string),
		personTitles: make(map[string][]string),
		titlePersons: make(map[string][]string),
	}
}

// Freeze ends the build phase. Subsequent mutations fail with ErrGraphFrozen.
func (g *Graph) Freeze() {
	g.frozen = true
}

// Frozen reports whether Freeze has been called.
func (g *Graph) Frozen() bool {
	return g.frozen
}

// Stats returns vertex and credit counts. Credits counts person→title entries.
func (g *Graph) Stats() Stats {
	credits := 0
	for _, titles := range g.personTitles {
		credits += len(titles)
	}
	return Stats{
		Persons: len(g.persons),
		Titles:  len(g.titles),
		Credits: credits,
	}
}

func (g *Graph) checkMutable(id string) error {
	if g.frozen {
		return ErrGraphFrozen
	}
	if id == "" {
		return ErrEmptyID
	}
	return nil
}
