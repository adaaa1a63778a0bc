package graph

import "fmt"

// AddPerson inserts or overwrites the display name of a person.
func (g *Graph) AddPerson(id, name string) error {
	if err := g.checkMutable(id); err != nil {
		return err
	}
	g.persons[id] = name
	return nil
}

// AddTitle inserts or overwrites the display name of a title.
func (g *Graph) AddTitle(id, name string) error {
	if err := g.checkMutable(id); err != nil {
		return err
	}
	g.titles[id] = name
	return nil
}

// HasPerson reports whether id names a stored person.
func (g *Graph) HasPerson(id string) bool {
	_, ok := g.persons[id]
	return ok
}

// HasTitle reports whether id names a stored title.
func (g *Graph) HasTitle(id string) bool {
	_, ok := g.titles[id]
	return ok
}

// PersonName returns the display name stored for a person.
func (g *Graph) PersonName(id string) (string, error) {
	name, ok := g.persons[id]
	if !ok {
		return "", fmt.Errorf("%w: person %q", ErrNotFound, id)
	}
	return name, nil
}

// TitleName returns the display name stored for a title.
func (g *Graph) TitleName(id string) (string, error) {
	name, ok := g.titles[id]
	if !ok {
		return "", fmt.Errorf("%w: title %q", ErrNotFound, id)
	}
	return name, nil
}

// Name resolves a vertex of either kind to its display name.
func (g *Graph) Name(v Vertex) (string, error) {
	if v.Kind == KindTitle {
		return g.TitleName(v.ID)
	}
	return g.PersonName(v.ID)
}
