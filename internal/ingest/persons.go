package ingest

import (
	"context"
	"fmt"
	"io"
)

var actingRoles = map[string]struct{}{
	"actor":   {},
	"actress": {},
}

// LoadPersons stores every actor and actress of a persons dataset and links
// them to the known titles they are credited in. A person is stored even when
// none of their titles are known.
func LoadPersons(ctx context.Context, store Store, r io.Reader) (PersonReport, error) {
	var report PersonReport
	err := scanRecords(ctx, r, personColumnCount, func(fields []string) error {
		if len(fields) < personColumnCount || fields[personColID] == "" {
			report.InvalidRecords++
			return nil
		}
		if !isActing(fields[personColProfessions]) {
			report.NonActors++
			return nil
		}

		personID := fields[personColID]
		for _, titleID := range splitList(fields[personColKnownFor]) {
			if !store.HasTitle(titleID) {
				report.UnknownTitleRefs++
				continue
			}
			if err := store.AddTitlePersonEdge(titleID, personID); err != nil {
				return fmt.Errorf("add credit %s/%s: %w", personID, titleID, err)
			}
			if err := store.AddPersonTitleEdge(personID, titleID); err != nil {
				return fmt.Errorf("add credit %s/%s: %w", personID, titleID, err)
			}
			report.Credits++
		}

		if err := store.AddPerson(personID, fields[personColName]); err != nil {
			return fmt.Errorf("add person %s: %w", personID, err)
		}
		report.Accepted++
		return nil
	})
	return report, err
}

// isActing reports whether the primary (first listed) profession is acting.
func isActing(professions string) bool {
	roles := splitList(professions)
	if len(roles) == 0 {
		return false
	}
	_, ok := actingRoles[roles[0]]
	return ok
}
