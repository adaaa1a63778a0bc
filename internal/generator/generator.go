package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// TitleRow is one line of the titles file.
type TitleRow struct {
	ID        string
	Type      string
	Name      string
	StartYear int
	Runtime   int
	Genres    []string
}

// PersonRow is one line of the persons file.
type PersonRow struct {
	ID          string
	Name        string
	BirthYear   int
	Professions []string
	KnownFor    []string
}

// Dataset contains the generated titles and persons.
type Dataset struct {
	Titles  []TitleRow
	Persons []PersonRow
}

// Generator produces synthetic filmography data in the IMDb column layout.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
	popular       []string
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumTitles <= 0 {
		cfg.NumTitles = def.NumTitles
	}
	if cfg.NumPersons <= 0 {
		cfg.NumPersons = def.NumPersons
	}
	if cfg.MaxKnownFor <= 0 {
		cfg.MaxKnownFor = def.MaxKnownFor
	}
	if cfg.NonMovieChance < 0 {
		cfg.NonMovieChance = def.NonMovieChance
	}
	if cfg.NonActorChance < 0 {
		cfg.NonActorChance = def.NonActorChance
	}
	if cfg.DanglingChance < 0 {
		cfg.DanglingChance = def.DanglingChance
	}
	if cfg.PopularChance < 0 {
		cfg.PopularChance = def.PopularChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises titles and persons. It respects context cancellation.
// The same seed always yields the same dataset.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	titles := make([]TitleRow, g.cfg.NumTitles)
	for i := range titles {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		titleType := "movie"
		if g.rand.Float64() < g.cfg.NonMovieChance {
			titleType = g.pick(g.nameFragments.otherTitleTypes)
		}
		titles[i] = TitleRow{
			ID:        fmt.Sprintf("tt%07d", i+1),
			Type:      titleType,
			Name:      g.randomTitleName(),
			StartYear: 1920 + g.rand.Intn(105),
			Runtime:   70 + g.rand.Intn(110),
			Genres:    g.randomGenres(),
		}
	}

	persons := make([]PersonRow, g.cfg.NumPersons)
	for i := range persons {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		persons[i] = PersonRow{
			ID:          fmt.Sprintf("nm%07d", i+1),
			Name:        g.randomFullName(),
			BirthYear:   1900 + g.rand.Intn(105),
			Professions: g.randomProfessions(),
			KnownFor:    g.randomKnownFor(titles),
		}
	}

	return Dataset{Titles: titles, Persons: persons}, nil
}

// randomKnownFor mixes titles from a shared pool of popular titles with
// fresh picks so the resulting credit graph has one large component.
func (g *Generator) randomKnownFor(titles []TitleRow) []string {
	if len(titles) == 0 {
		return nil
	}
	count := g.rand.Intn(g.cfg.MaxKnownFor + 1)
	out := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for range count {
		var id string
		switch {
		case g.rand.Float64() < g.cfg.DanglingChance:
			id = fmt.Sprintf("tt%07d", len(titles)+1+g.rand.Intn(1_000_000))
		default:
			id = g.maybeShared(&g.popular, g.cfg.PopularChance, func() string {
				return titles[g.rand.Intn(len(titles))].ID
			})
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (g *Generator) maybeShared(pool *[]string, chance float64, newValue func() string) string {
	if len(*pool) > 0 && g.rand.Float64() < chance {
		return (*pool)[g.rand.Intn(len(*pool))]
	}
	val := newValue()
	*pool = append(*pool, val)
	return val
}

func (g *Generator) randomProfessions() []string {
	primary := g.pick([]string{"actor", "actress"})
	if g.rand.Float64() < g.cfg.NonActorChance {
		primary = g.pick(g.nameFragments.otherProfessions)
	}
	professions := []string{primary}
	if g.rand.Float64() < 0.3 {
		extra := g.pick(g.nameFragments.otherProfessions)
		if extra != primary {
			professions = append(professions, extra)
		}
	}
	return professions
}

func (g *Generator) randomGenres() []string {
	count := 1 + g.rand.Intn(3)
	genres := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for range count {
		genre := g.pick(g.nameFragments.genres)
		if _, dup := seen[genre]; dup {
			continue
		}
		seen[genre] = struct{}{}
		genres = append(genres, genre)
	}
	return genres
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.pick(g.nameFragments.first), g.pick(g.nameFragments.last))
}

func (g *Generator) randomTitleName() string {
	return fmt.Sprintf("The %s %s", g.pick(g.nameFragments.adjectives), g.pick(g.nameFragments.nouns))
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

type nameFragments struct {
	first            []string
	last             []string
	adjectives       []string
	nouns            []string
	genres           []string
	otherTitleTypes  []string
	otherProfessions []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:            []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:             []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		adjectives:       []string{"Silent", "Crimson", "Last", "Hidden", "Golden", "Broken", "Distant", "Midnight", "Lonely", "Electric"},
		nouns:            []string{"Harbor", "Frontier", "Kingdom", "Letter", "Summer", "Witness", "Garden", "Voyage", "Empire", "River"},
		genres:           []string{"Drama", "Comedy", "Thriller", "Romance", "Western", "Horror", "Documentary", "Sci-Fi"},
		otherTitleTypes:  []string{"short", "tvSeries", "tvEpisode", "tvMovie", "videoGame"},
		otherProfessions: []string{"director", "writer", "producer", "composer", "cinematographer", "editor"},
	}
}
