package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graphdb"
)

func TestRepository_UpsertTitles(t *testing.T) {
	mem := graphdb.NewMemoryClient()
	repo := New(mem)

	titles := []domain.Title{{ID: "tt1", Name: "Movie A"}, {ID: "tt2", Name: "Movie B"}}
	if err := repo.UpsertTitles(context.Background(), titles); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	if calls[0].Query != upsertTitlesCypher {
		t.Fatalf("unexpected query\nexpected:\n%s\ngot:\n%s", upsertTitlesCypher, calls[0].Query)
	}
	rows, ok := calls[0].Params["rows"].([]map[string]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %T (%v)", calls[0].Params["rows"], calls[0].Params["rows"])
	}
	if rows[1]["id"] != "tt2" || rows[1]["name"] != "Movie B" {
		t.Errorf("unexpected row %v", rows[1])
	}
}

func TestRepository_UpsertPersonsAndCredits(t *testing.T) {
	mem := graphdb.NewMemoryClient()
	repo := New(mem)
	ctx := context.Background()

	if err := repo.UpsertPersons(ctx, []domain.Person{{ID: "nm1", Name: "Alice"}}); err != nil {
		t.Fatalf("upsert persons: %v", err)
	}
	if err := repo.UpsertCredits(ctx, []domain.Credit{{PersonID: "nm1", TitleID: "tt1"}}); err != nil {
		t.Fatalf("upsert credits: %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 write queries, got %d", len(calls))
	}
	if calls[0].Query != upsertPersonsCypher || calls[1].Query != upsertCreditsCypher {
		t.Fatalf("unexpected statement order")
	}
	rows := calls[1].Params["rows"].([]map[string]any)
	if rows[0]["personId"] != "nm1" || rows[0]["titleId"] != "tt1" {
		t.Errorf("unexpected credit row %v", rows[0])
	}
}

func TestRepository_UpsertValidation(t *testing.T) {
	mem := graphdb.NewMemoryClient()
	repo := New(mem)
	ctx := context.Background()

	if err := repo.UpsertTitles(ctx, nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
	if err := repo.UpsertPersons(ctx, []domain.Person{{Name: "No ID"}}); err == nil {
		t.Fatal("expected error for missing person id")
	}
	if err := repo.UpsertCredits(ctx, []domain.Credit{{PersonID: "nm1"}}); err == nil {
		t.Fatal("expected error for missing title id")
	}
	if n := len(mem.WriteCalls()); n != 0 {
		t.Fatalf("expected no writes, got %d", n)
	}
}

func TestRepository_WriteErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := New(graphdb.NewMemoryClient().WithWriteError(boom))

	err := repo.UpsertTitles(context.Background(), []domain.Title{{ID: "tt1"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestRepository_EnsureSchema(t *testing.T) {
	mem := graphdb.NewMemoryClient()
	if err := New(mem).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if got := len(mem.WriteCalls()); got != len(schemaCypher) {
		t.Fatalf("expected %d statements, got %d", len(schemaCypher), got)
	}
}

func TestRepository_ShortestPathBetweenPersons(t *testing.T) {
	mem := graphdb.NewMemoryClient().OnRead(func(cypher string, params map[string]any) (graphdb.Result, error) {
		if cypher != shortestPathCypher {
			t.Fatalf("unexpected query %s", cypher)
		}
		// Local searches are unbounded, so the mirror query must be too.
		if strings.Contains(cypher, "*..") {
			t.Fatalf("shortest path query caps the hop count: %s", cypher)
		}
		if params["sourceId"] != "nm1" || params["targetId"] != "nm2" {
			t.Fatalf("unexpected params %v", params)
		}
		return graphdb.Result{Records: []graphdb.Record{{
			"nodes": []any{
				map[string]any{"id": "nm1", "kind": "person", "name": "Alice"},
				map[string]any{"id": "tt1", "kind": "title", "name": "Movie A"},
				map[string]any{"id": "nm2", "kind": "person", "name": "Bob"},
			},
			"hops": int64(2),
		}}}, nil
	})
	repo := New(mem)

	path, err := repo.ShortestPathBetweenPersons(context.Background(), "nm1", "nm2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !path.Found || path.Hops != 2 {
		t.Fatalf("expected found path with 2 hops, got %+v", path)
	}
	if len(path.Nodes) != 3 || path.Nodes[1].Kind != domain.KindTitle || path.Nodes[1].Name != "Movie A" {
		t.Fatalf("unexpected nodes %+v", path.Nodes)
	}
}

func TestRepository_ShortestPathNoResult(t *testing.T) {
	repo := New(graphdb.NewMemoryClient())

	path, err := repo.ShortestPathBetweenPersons(context.Background(), "nm1", "nm9")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path.Found {
		t.Fatalf("expected no path, got %+v", path)
	}
}

func TestRepository_ShortestPathSamePerson(t *testing.T) {
	mem := graphdb.NewMemoryClient().OnRead(func(cypher string, params map[string]any) (graphdb.Result, error) {
		return graphdb.Result{Records: []graphdb.Record{{"name": "Alice"}}}, nil
	})

	path, err := New(mem).ShortestPathBetweenPersons(context.Background(), "nm1", "nm1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !path.Found || path.Hops != 0 || len(path.Nodes) != 1 || path.Nodes[0].Name != "Alice" {
		t.Fatalf("unexpected trivial path %+v", path)
	}
	if calls := mem.ReadCalls(); len(calls) != 1 || calls[0].Query != personCypher {
		t.Fatalf("expected a single person lookup, got %+v", calls)
	}
}
