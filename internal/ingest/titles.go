package ingest

import (
	"context"
	"fmt"
	"io"
)

// LoadTitles stores every movie record of a titles dataset. Records with too
// few columns and titles of any other type are counted and skipped.
func LoadTitles(ctx context.Context, store Store, r io.Reader) (TitleReport, error) {
	var report TitleReport
	err := scanRecords(ctx, r, titleColumnCount, func(fields []string) error {
		if len(fields) < titleColumnCount || fields[titleColID] == "" {
			report.InvalidRecords++
			return nil
		}
		if fields[titleColType] != movieType {
			report.NonMovies++
			return nil
		}
		if err := store.AddTitle(fields[titleColID], fields[titleColName]); err != nil {
			return fmt.Errorf("add title %s: %w", fields[titleColID], err)
		}
		report.Accepted++
		return nil
	})
	return report, err
}
