package selection

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/sixdegrees/internal/graph"
)

func fixture(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddPerson("nm1", "Chris Evans"))
	require.NoError(t, g.AddPerson("nm2", "Chris Pratt"))
	require.NoError(t, g.AddPerson("nm3", "Chris Nobody"))
	require.NoError(t, g.AddPerson("nm4", "Emma Stone"))
	require.NoError(t, g.AddTitle("tt1", "The Avengers"))
	require.NoError(t, g.AddTitle("tt2", "Jurassic World"))
	require.NoError(t, g.AddCredit("nm1", "tt1"))
	require.NoError(t, g.AddCredit("nm2", "tt2"))
	require.NoError(t, g.AddCredit("nm2", "tt1"))
	g.Freeze()
	return g
}

func TestSelectPerson_SingleMatch(t *testing.T) {
	var out bytes.Buffer
	sel := New(fixture(t), NewLinePrompter(strings.NewReader("Emma\n"), &out), graph.MatchSubstring, 0)

	id, err := sel.SelectPerson(context.Background(), "Choose an actor to travel from:")
	require.NoError(t, err)
	assert.Equal(t, "nm4", id)
	assert.Contains(t, out.String(), "Choose an actor to travel from:")
}

func TestSelectPerson_RetriesAfterNoMatch(t *testing.T) {
	var out bytes.Buffer
	sel := New(fixture(t), NewLinePrompter(strings.NewReader("Keanu\nEmma Stone\n"), &out), graph.MatchExact, 0)

	id, err := sel.SelectPerson(context.Background(), "from:")
	require.NoError(t, err)
	assert.Equal(t, "nm4", id)
	assert.Contains(t, out.String(), "No matches, choose again.")
}

func TestSelectPerson_Disambiguates(t *testing.T) {
	var out bytes.Buffer
	// "Chris" matches three persons; Chris Nobody has no credits and is not listed.
	sel := New(fixture(t), NewLinePrompter(strings.NewReader("Chris\n2\n"), &out), graph.MatchSubstring, 0)

	id, err := sel.SelectPerson(context.Background(), "from:")
	require.NoError(t, err)
	assert.Equal(t, "nm2", id)

	listing := out.String()
	assert.Contains(t, listing, "1 - Chris Evans - The Avengers")
	assert.Contains(t, listing, "2 - Chris Pratt - Jurassic World, The Avengers")
	assert.NotContains(t, listing, "Chris Nobody")
}

func TestSelectPerson_InvalidChoiceIsBounded(t *testing.T) {
	var out bytes.Buffer
	sel := New(fixture(t), NewLinePrompter(strings.NewReader("Chris\nx\n9\n0\n"), &out), graph.MatchSubstring, 3)

	_, err := sel.SelectPerson(context.Background(), "from:")
	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid choice, try again."))
}

func TestSelectPerson_Cancel(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "quit", input: "q\n"},
		{name: "empty line", input: "\n"},
		{name: "eof", input: ""},
		{name: "attempts exhausted", input: "a\nb\nc\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := New(fixture(t), NewLinePrompter(strings.NewReader(tc.input), &bytes.Buffer{}), graph.MatchExact, 3)
			_, err := sel.SelectPerson(context.Background(), "from:")
			assert.ErrorIs(t, err, ErrCancelled)
		})
	}
}

func TestSelectPair(t *testing.T) {
	sel := New(fixture(t), NewLinePrompter(strings.NewReader("Emma\nEvans\n"), &bytes.Buffer{}), graph.MatchSubstring, 0)

	src, dst, err := sel.SelectPair(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nm4", src)
	assert.Equal(t, "nm1", dst)
}

func TestSelectPerson_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sel := New(fixture(t), NewLinePrompter(strings.NewReader("Emma\n"), &bytes.Buffer{}), graph.MatchSubstring, 0)

	_, err := sel.SelectPerson(ctx, "from:")
	assert.True(t, errors.Is(err, context.Canceled))
}

type scriptedPrompter struct {
	answers []string
	picks   []int
	notes   []string
}

func (s *scriptedPrompter) Ask(string) (string, error) {
	if len(s.answers) == 0 {
		return "", ErrCancelled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scriptedPrompter) Pick(_ string, options []string) (int, error) {
	if len(s.picks) == 0 {
		return 0, ErrCancelled
	}
	p := s.picks[0]
	s.picks = s.picks[1:]
	return p, nil
}

func (s *scriptedPrompter) Notify(msg string) { s.notes = append(s.notes, msg) }

func TestSelectPerson_ListsUncreditedWhenNoneHaveCredits(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddPerson("nm1", "Sam"))
	require.NoError(t, g.AddPerson("nm2", "Sam"))
	g.Freeze()

	p := &scriptedPrompter{answers: []string{"Sam"}, picks: []int{7, 1}}
	sel := New(g, p, graph.MatchExact, 0)

	id, err := sel.SelectPerson(context.Background(), "from:")
	require.NoError(t, err)
	assert.Equal(t, "nm2", id)
	assert.Equal(t, []string{"Invalid choice, try again."}, p.notes)
}

func TestCandidates(t *testing.T) {
	candidates, err := Candidates(fixture(t), []string{"nm2", "nm3"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Chris Pratt", candidates[0].Name)
	assert.Equal(t, []string{"Jurassic World", "The Avengers"}, candidates[0].Titles)
	assert.Empty(t, candidates[1].Titles)
}

func TestNewPrompter_NonTerminalReaderUsesLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Emma Stone\n"), &out)
	require.IsType(t, &LinePrompter{}, p)

	sel := New(fixture(t), p, graph.MatchExact, 0)
	id, err := sel.SelectPerson(context.Background(), "from:")
	require.NoError(t, err)
	assert.Equal(t, "nm4", id)
}
