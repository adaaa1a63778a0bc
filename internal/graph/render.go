package graph

import "strings"

// PathSeparator joins rendered names in FormatPath.
const PathSeparator = ", "

// Render resolves every vertex on the traced path to its display name, in
// source-to-destination order. A vertex missing from the store yields
// ErrNotFound.
func (g *Graph) Render(trace *PathTrace) ([]string, error) {
	vertices, err := trace.Vertices()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(vertices))
	for _, v := range vertices {
		name, err := g.Name(v)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// FormatPath joins rendered names into a single line.
func FormatPath(names []string) string {
	return strings.Join(names, PathSeparator)
}
