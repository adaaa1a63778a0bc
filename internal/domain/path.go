package domain

// Node kinds used in PathNode.Kind.
const (
	KindPerson = "person"
	KindTitle  = "title"
)

// PathNode represents a vertex within a connection path.
type PathNode struct {
	ID   string
	Kind string
	Name string
}

// ShortestPath encapsulates the chain connecting a source and target person.
// Found is false when the two people share no transitive credit chain.
type ShortestPath struct {
	SourceID string
	TargetID string
	Found    bool
	Nodes    []PathNode
	Hops     int
}

// Names returns the display names along the path in source-to-target order.
func (p ShortestPath) Names() []string {
	names := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		names = append(names, n.Name)
	}
	return names
}
