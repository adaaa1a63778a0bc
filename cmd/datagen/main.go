package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/sixdegrees/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		titles         = flag.Int("titles", cfg.NumTitles, "number of titles to generate")
		persons        = flag.Int("persons", cfg.NumPersons, "number of persons to generate")
		maxKnownFor    = flag.Int("max-known-for", cfg.MaxKnownFor, "maximum known-for titles per person")
		nonMovieChance = flag.Float64("non-movie-chance", cfg.NonMovieChance, "probability that a title is not a movie")
		nonActorChance = flag.Float64("non-actor-chance", cfg.NonActorChance, "probability that a person is not primarily an actor")
		danglingChance = flag.Float64("dangling-chance", cfg.DanglingChance, "probability that a known-for reference points at no title")
		popularChance  = flag.Float64("popular-chance", cfg.PopularChance, "probability of reusing an already credited title")
		seed           = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir      = flag.String("output-dir", "data", "directory to write titles.tsv and persons.tsv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumTitles:      *titles,
		NumPersons:     *persons,
		MaxKnownFor:    *maxKnownFor,
		NonMovieChance: clampProbability(*nonMovieChance),
		NonActorChance: clampProbability(*nonActorChance),
		DanglingChance: clampProbability(*danglingChance),
		PopularChance:  clampProbability(*popularChance),
		Seed:           *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d titles and %d persons into %s\n", len(dataset.Titles), len(dataset.Persons), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
