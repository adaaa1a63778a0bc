// Package selection turns free-text operator input into person ids.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graph"
)

const (
	// DefaultMaxAttempts bounds how often an operator is re-prompted.
	DefaultMaxAttempts = 5
	cancelInput        = "q"
)

var (
	// ErrCancelled is returned when the operator gives up, enters nothing, or
	// runs out of attempts.
	ErrCancelled = errors.New("selection cancelled")

	// ErrInvalidChoice is returned by a Prompter when the picked entry is not
	// one of the offered options.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Lookup is the read side of the credit graph used for selection.
type Lookup interface {
	FindPersons(query string, policy graph.MatchPolicy) []string
	PersonName(id string) (string, error)
	TitleName(id string) (string, error)
	Neighbors(id string, kind graph.Kind) []string
}

// Prompter performs the operator I/O.
type Prompter interface {
	// Ask shows title and returns one line of free text.
	Ask(title string) (string, error)
	// Pick shows title and options and returns the chosen index.
	Pick(title string, options []string) (int, error)
	// Notify shows an informational message.
	Notify(message string)
}

// Selector resolves person names through a Lookup, asking the operator to
// disambiguate when several persons match.
type Selector struct {
	lookup      Lookup
	prompter    Prompter
	policy      graph.MatchPolicy
	maxAttempts int
}

// New creates a Selector. maxAttempts <= 0 selects DefaultMaxAttempts.
func New(lookup Lookup, prompter Prompter, policy graph.MatchPolicy, maxAttempts int) *Selector {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Selector{
		lookup:      lookup,
		prompter:    prompter,
		policy:      policy,
		maxAttempts: maxAttempts,
	}
}

// SelectPair asks for the person to travel from and the person to travel to.
func (s *Selector) SelectPair(ctx context.Context) (string, string, error) {
	source, err := s.SelectPerson(ctx, "Choose an actor to travel from:")
	if err != nil {
		return "", "", err
	}
	destination, err := s.SelectPerson(ctx, "Choose an actor to travel to:")
	if err != nil {
		return "", "", err
	}
	return source, destination, nil
}

// SelectPerson prompts until the input resolves to exactly one person.
func (s *Selector) SelectPerson(ctx context.Context, title string) (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		input, err := s.prompter.Ask(title)
		if err != nil {
			return "", err
		}
		query := strings.TrimSpace(input)
		if query == "" || query == cancelInput {
			return "", ErrCancelled
		}

		ids := s.lookup.FindPersons(query, s.policy)
		switch len(ids) {
		case 0:
			s.prompter.Notify("No matches, choose again.")
			continue
		case 1:
			return ids[0], nil
		}
		return s.disambiguate(ctx, ids)
	}
	return "", fmt.Errorf("%w: no match after %d attempts", ErrCancelled, s.maxAttempts)
}

func (s *Selector) disambiguate(ctx context.Context, ids []string) (string, error) {
	candidates, err := Candidates(s.lookup, ids)
	if err != nil {
		return "", err
	}
	listed := listable(candidates)
	options := make([]string, len(listed))
	for i, c := range listed {
		options[i] = describe(c)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		idx, err := s.prompter.Pick("Choose a match by typing the corresponding number", options)
		if errors.Is(err, ErrInvalidChoice) || (err == nil && (idx < 0 || idx >= len(listed))) {
			s.prompter.Notify("Invalid choice, try again.")
			continue
		}
		if err != nil {
			return "", err
		}
		return listed[idx].ID, nil
	}
	return "", fmt.Errorf("%w: no valid choice after %d attempts", ErrCancelled, s.maxAttempts)
}

// Candidates describes each person id with its name and credited titles.
func Candidates(lookup Lookup, ids []string) ([]domain.PersonCandidate, error) {
	out := make([]domain.PersonCandidate, 0, len(ids))
	for _, id := range ids {
		name, err := lookup.PersonName(id)
		if err != nil {
			return nil, err
		}
		titleIDs := lookup.Neighbors(id, graph.KindPerson)
		titles := make([]string, 0, len(titleIDs))
		for _, titleID := range titleIDs {
			title, err := lookup.TitleName(titleID)
			if err != nil {
				return nil, err
			}
			titles = append(titles, title)
		}
		out = append(out, domain.PersonCandidate{ID: id, Name: name, Titles: titles})
	}
	return out, nil
}

// listable keeps candidates with credits; if none have any, all are kept.
func listable(candidates []domain.PersonCandidate) []domain.PersonCandidate {
	var credited []domain.PersonCandidate
	for _, c := range candidates {
		if len(c.Titles) > 0 {
			credited = append(credited, c)
		}
	}
	if len(credited) == 0 {
		return candidates
	}
	return credited
}

func describe(c domain.PersonCandidate) string {
	if len(c.Titles) == 0 {
		return fmt.Sprintf("%s (%s)", c.Name, c.ID)
	}
	return fmt.Sprintf("%s - %s", c.Name, strings.Join(c.Titles, graph.PathSeparator))
}
