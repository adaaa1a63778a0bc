package generator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File names written by WriteDataset.
const (
	TitlesFile  = "titles.tsv"
	PersonsFile = "persons.tsv"
)

const nullField = `\N`

var (
	titlesHeader  = []string{"tconst", "titleType", "primaryTitle", "originalTitle", "isAdult", "startYear", "endYear", "runtimeMinutes", "genres"}
	personsHeader = []string{"nconst", "primaryName", "birthYear", "deathYear", "primaryProfession", "knownForTitles"}
)

// WriteDataset serializes the dataset into titles.tsv and persons.tsv under
// the provided directory.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, TitlesFile), func(w io.Writer) error {
		return WriteTitles(w, dataset.Titles)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, PersonsFile), func(w io.Writer) error {
		return WritePersons(w, dataset.Persons)
	})
}

// WriteTitles writes rows in the title.basics layout, header first.
func WriteTitles(w io.Writer, rows []TitleRow) error {
	bw := bufio.NewWriter(w)
	writeRecord(bw, titlesHeader)
	for _, r := range rows {
		writeRecord(bw, []string{
			r.ID,
			r.Type,
			r.Name,
			r.Name,
			"0",
			optionalInt(r.StartYear),
			nullField,
			optionalInt(r.Runtime),
			joinList(r.Genres),
		})
	}
	return bw.Flush()
}

// WritePersons writes rows in the name.basics layout, header first.
func WritePersons(w io.Writer, rows []PersonRow) error {
	bw := bufio.NewWriter(w)
	writeRecord(bw, personsHeader)
	for _, r := range rows {
		writeRecord(bw, []string{
			r.ID,
			r.Name,
			optionalInt(r.BirthYear),
			nullField,
			joinList(r.Professions),
			joinList(r.KnownFor),
		})
	}
	return bw.Flush()
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// writeRecord ignores write errors; bufio.Writer reports the first one on
// Flush.
func writeRecord(bw *bufio.Writer, fields []string) {
	_, _ = bw.WriteString(strings.Join(fields, "\t"))
	_ = bw.WriteByte('\n')
}

func optionalInt(v int) string {
	if v == 0 {
		return nullField
	}
	return strconv.Itoa(v)
}

func joinList(values []string) string {
	if len(values) == 0 {
		return nullField
	}
	return strings.Join(values, ",")
}
