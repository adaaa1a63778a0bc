package graph

// AddPersonTitleEdge appends title to the neighbor list of person. It does
// not add the reverse direction; callers record both for every credit.
// Duplicates are kept.
func (g *Graph) AddPersonTitleEdge(personID, titleID string) error {
	if err := g.checkMutable(personID); err != nil {
		return err
	}
	if titleID == "" {
		return ErrEmptyID
	}
	g.personTitles[personID] = append(g.personTitles[personID], titleID)
	return nil
}

// AddTitlePersonEdge appends person to the neighbor list of title.
func (g *Graph) AddTitlePersonEdge(titleID, personID string) error {
	if err := g.checkMutable(titleID); err != nil {
		return err
	}
	if personID == "" {
		return ErrEmptyID
	}
	g.titlePersons[titleID] = append(g.titlePersons[titleID], personID)
	return nil
}

// AddCredit records both directions of a person/title credit.
func (g *Graph) AddCredit(personID, titleID string) error {
	if err := g.AddPersonTitleEdge(personID, titleID); err != nil {
		return err
	}
	return g.AddTitlePersonEdge(titleID, personID)
}

// Neighbors returns the neighbor ids of the vertex id of the given kind. The
// ids are of the opposite kind. The returned slice is shared with the graph
// and must not be modified.
func (g *Graph) Neighbors(id string, kind Kind) []string {
	if kind == KindTitle {
		return g.titlePersons[id]
	}
	return g.personTitles[id]
}
