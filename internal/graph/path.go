package graph

import "fmt"

// PathTrace is the result of a successful search: the BFS parent of every
// vertex reached before the destination was discovered.
type PathTrace struct {
	source      Vertex
	destination Vertex
	parent      map[Vertex]Vertex
}

// Source returns the person the search started from.
func (t *PathTrace) Source() Vertex { return t.source }

// Destination returns the person the search was looking for.
func (t *PathTrace) Destination() Vertex { return t.destination }

// Parent returns the vertex from which v was first reached.
func (t *PathTrace) Parent(v Vertex) (Vertex, bool) {
	p, ok := t.parent[v]
	return p, ok
}

// Vertices walks the parent chain back from the destination and returns the
// path in source-to-destination order.
func (t *PathTrace) Vertices() ([]Vertex, error) {
	path := []Vertex{t.destination}
	current := t.destination
	// A well-formed chain is never longer than the parent map.
	for steps := 0; current != t.source; steps++ {
		if steps > len(t.parent) {
			return nil, fmt.Errorf("%w: parent chain from %s does not reach %s", ErrNotFound, t.destination, t.source)
		}
		parent, ok := t.parent[current]
		if !ok {
			return nil, fmt.Errorf("%w: no parent recorded for %s", ErrNotFound, current)
		}
		path = append(path, parent)
		current = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Hops returns the number of edges on the traced path, or -1 if the parent
// chain is broken.
func (t *PathTrace) Hops() int {
	vertices, err := t.Vertices()
	if err != nil {
		return -1
	}
	return len(vertices) - 1
}

// ShortestPath runs a breadth-first search from the source person to the
// destination person, alternating person and title vertices. found is false
// when the destination is unreachable. Unknown source or destination ids fail
// with ErrInvalidQuery.
func (g *Graph) ShortestPath(sourceID, destinationID string) (trace *PathTrace, found bool, err error) {
	if !g.HasPerson(sourceID) {
		return nil, false, fmt.Errorf("%w: unknown source person %q", ErrInvalidQuery, sourceID)
	}
	if !g.HasPerson(destinationID) {
		return nil, false, fmt.Errorf("%w: unknown destination person %q", ErrInvalidQuery, destinationID)
	}

	src := Vertex{ID: sourceID, Kind: KindPerson}
	dst := Vertex{ID: destinationID, Kind: KindPerson}
	trace = &PathTrace{
		source:      src,
		destination: dst,
		parent:      make(map[Vertex]Vertex),
	}
	if src == dst {
		return trace, true, nil
	}

	visited := map[Vertex]struct{}{src: {}}
	frontier := []Vertex{src}
	for head := 0; head < len(frontier); head++ {
		current := frontier[head]
		if current == dst {
			return trace, true, nil
		}
		next := current.Kind.Opposite()
		for _, id := range g.Neighbors(current.ID, current.Kind) {
			neighbor := Vertex{ID: id, Kind: next}
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			trace.parent[neighbor] = current
			if neighbor == dst {
				return trace, true, nil
			}
			frontier = append(frontier, neighbor)
		}
	}
	return nil, false, nil
}
