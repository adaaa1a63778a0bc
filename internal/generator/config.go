package generator

// Config drives the synthetic filmography generator.
type Config struct {
	NumTitles      int
	NumPersons     int
	MaxKnownFor    int
	NonMovieChance float64
	NonActorChance float64
	DanglingChance float64
	PopularChance  float64
	Seed           int64
}

// DefaultConfig returns settings that produce a well connected graph of a few
// thousand vertices.
func DefaultConfig() Config {
	return Config{
		NumTitles:      2000,
		NumPersons:     5000,
		MaxKnownFor:    4,
		NonMovieChance: 0.2,
		NonActorChance: 0.15,
		DanglingChance: 0.02,
		PopularChance:  0.3,
		Seed:           42,
	}
}
