package generator

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/ingest"
)

func smallConfig() Config {
	return Config{
		NumTitles:      50,
		NumPersons:     200,
		MaxKnownFor:    4,
		NonMovieChance: 0.2,
		NonActorChance: 0.2,
		DanglingChance: 0.05,
		PopularChance:  0.4,
		Seed:           7,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.Titles, 50)
	assert.Len(t, first.Persons, 200)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(smallConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteTitles_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTitles(&buf, []TitleRow{{ID: "tt0000001", Type: "movie", Name: "The Last Harbor"}}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(titlesHeader, "\t"), lines[0])
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, len(titlesHeader))
	assert.Equal(t, "movie", fields[1])
	assert.Equal(t, `\N`, fields[5])
	assert.Equal(t, `\N`, fields[8])
}

func TestWritePersons_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePersons(&buf, []PersonRow{{
		ID:          "nm0000001",
		Name:        "Jane Doe",
		BirthYear:   1970,
		Professions: []string{"actress", "producer"},
	}}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "nm0000001\tJane Doe\t1970\t\\N\tactress,producer\t\\N", lines[1])
}

// The generated files must load cleanly, and the ingestion diagnostics must
// match what the generator produced.
func TestWriteDataset_Ingests(t *testing.T) {
	dataset, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, WriteDataset(dataset, dir))

	movies := map[string]bool{}
	for _, title := range dataset.Titles {
		if title.Type == "movie" {
			movies[title.ID] = true
		}
	}
	var actors, nonActors, credits, unknown int
	for _, p := range dataset.Persons {
		if p.Professions[0] != "actor" && p.Professions[0] != "actress" {
			nonActors++
			continue
		}
		actors++
		for _, ref := range p.KnownFor {
			if movies[ref] {
				credits++
			} else {
				unknown++
			}
		}
	}

	g := graph.New()
	report, err := ingest.Load(context.Background(), g,
		filepath.Join(dir, TitlesFile), filepath.Join(dir, PersonsFile))
	require.NoError(t, err)

	assert.Equal(t, len(movies), report.Titles.Accepted)
	assert.Equal(t, len(dataset.Titles)-len(movies), report.Titles.NonMovies)
	assert.Zero(t, report.Titles.InvalidRecords)
	assert.Equal(t, actors, report.Persons.Accepted)
	assert.Equal(t, nonActors, report.Persons.NonActors)
	assert.Equal(t, credits, report.Persons.Credits)
	assert.Equal(t, unknown, report.Persons.UnknownTitleRefs)
	assert.Zero(t, report.Persons.InvalidRecords)

	stats := g.Stats()
	assert.Equal(t, actors, stats.Persons)
	assert.Equal(t, len(movies), stats.Titles)
}
