package graph

import "iter"

// Persons yields every stored person id and display name.
func (g *Graph) Persons() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for id, name := range g.persons {
			if !yield(id, name) {
				return
			}
		}
	}
}

// Titles yields every stored title id and display name.
func (g *Graph) Titles() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for id, name := range g.titles {
			if !yield(id, name) {
				return
			}
		}
	}
}

// Credits yields every person→title adjacency entry, duplicates included.
func (g *Graph) Credits() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for personID, titles := range g.personTitles {
			for _, titleID := range titles {
				if !yield(personID, titleID) {
					return
				}
			}
		}
	}
}
