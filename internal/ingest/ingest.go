// Package ingest parses IMDb-shaped TSV datasets into a credit graph.
//
// Titles must be loaded before persons: a person's credits only reference
// titles that are already stored, and unknown references are counted rather
// than created.
package ingest

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column layout of the titles dataset (title.basics.tsv).
const (
	titleColID       = 0
	titleColType     = 1
	titleColName     = 2
	titleColumnCount = 3
)

// Column layout of the persons dataset (name.basics.tsv).
const (
	personColID          = 0
	personColName        = 1
	personColProfessions = 4
	personColKnownFor    = 5
	personColumnCount    = 6
)

const (
	movieType     = "movie"
	nullField     = `\N`
	maxLineBytes  = 4 << 20
	ctxCheckEvery = 4096
)

// ErrMalformedHeader is returned when a dataset header has fewer columns than
// the layout requires.
var ErrMalformedHeader = errors.New("malformed dataset header")

// Store is the part of the credit graph written during ingestion.
type Store interface {
	AddTitle(id, name string) error
	AddPerson(id, name string) error
	HasTitle(id string) bool
	AddPersonTitleEdge(personID, titleID string) error
	AddTitlePersonEdge(titleID, personID string) error
}

// TitleReport counts the outcome of loading a titles dataset.
type TitleReport struct {
	Accepted       int
	InvalidRecords int
	NonMovies      int
}

// PersonReport counts the outcome of loading a persons dataset.
type PersonReport struct {
	Accepted         int
	InvalidRecords   int
	NonActors        int
	UnknownTitleRefs int
	Credits          int
}

// Report combines the diagnostics of a full load.
type Report struct {
	Titles  TitleReport
	Persons PersonReport
}

// Load reads the titles file and then the persons file into store.
func Load(ctx context.Context, store Store, titlesPath, personsPath string) (Report, error) {
	var report Report

	err := withFile(titlesPath, func(r io.Reader) error {
		var err error
		report.Titles, err = LoadTitles(ctx, store, r)
		return err
	})
	if err != nil {
		return report, err
	}

	err = withFile(personsPath, func(r io.Reader) error {
		var err error
		report.Persons, err = LoadPersons(ctx, store, r)
		return err
	})
	return report, err
}

// Open opens a dataset file, decompressing it when the name ends in ".gz".
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}
	zr, err := gzip.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, file: file}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return zerr
}

func withFile(path string, fn func(io.Reader) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := fn(rc); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// scanRecords calls fn for every record after the header line. The header
// must have at least minColumns fields.
func scanRecords(ctx context.Context, r io.Reader, minColumns int, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !scanner.Scan() {
		return scanner.Err()
	}
	if header := splitRecord(scanner.Text()); len(header) < minColumns {
		return fmt.Errorf("%w: want %d columns, got %d", ErrMalformedHeader, minColumns, len(header))
	}

	for line := 1; scanner.Scan(); line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(splitRecord(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func splitRecord(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\r"), "\t")
}

// splitList splits a comma-separated field, dropping empty and null entries.
func splitList(field string) []string {
	if field == "" || field == nullField {
		return nil
	}
	parts := strings.Split(field, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == nullField {
			continue
		}
		out = append(out, p)
	}
	return out
}
