package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graphdb"
)

// Repository mirrors the credit graph into a graph database.
type Repository struct {
	client graphdb.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graphdb.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the uniqueness constraints the upserts rely on.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaCypher {
		if _, err := r.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertTitles merges a batch of title nodes.
func (r *Repository) UpsertTitles(ctx context.Context, titles []domain.Title) error {
	if len(titles) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(titles))
	for _, t := range titles {
		if t.ID == "" {
			return errors.New("title id is required")
		}
		rows = append(rows, map[string]any{"id": t.ID, "name": t.Name})
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertTitlesCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d titles: %w", len(rows), err)
	}
	return nil
}

// UpsertPersons merges a batch of person nodes.
func (r *Repository) UpsertPersons(ctx context.Context, persons []domain.Person) error {
	if len(persons) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(persons))
	for _, p := range persons {
		if p.ID == "" {
			return errors.New("person id is required")
		}
		rows = append(rows, map[string]any{"id": p.ID, "name": p.Name})
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertPersonsCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d persons: %w", len(rows), err)
	}
	return nil
}

// UpsertCredits merges CREDITED_IN relationships between existing nodes.
func (r *Repository) UpsertCredits(ctx context.Context, credits []domain.Credit) error {
	if len(credits) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(credits))
	for _, c := range credits {
		if c.PersonID == "" || c.TitleID == "" {
			return errors.New("credit requires person and title ids")
		}
		rows = append(rows, map[string]any{"personId": c.PersonID, "titleId": c.TitleID})
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertCreditsCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d credits: %w", len(rows), err)
	}
	return nil
}

// ShortestPathBetweenPersons asks the database for its own shortest path
// between two persons. Found is false when the database has none.
func (r *Repository) ShortestPathBetweenPersons(ctx context.Context, sourceID, targetID string) (domain.ShortestPath, error) {
	if sourceID == "" || targetID == "" {
		return domain.ShortestPath{}, errors.New("source and target person IDs are required")
	}
	path := domain.ShortestPath{
		SourceID: sourceID,
		TargetID: targetID,
	}
	if sourceID == targetID {
		res, err := r.client.ExecuteRead(ctx, personCypher, map[string]any{"personId": sourceID})
		if err != nil {
			return domain.ShortestPath{}, fmt.Errorf("person query: %w", err)
		}
		if rec, ok := res.First(); ok {
			path.Found = true
			path.Nodes = []domain.PathNode{{ID: sourceID, Kind: domain.KindPerson, Name: toString(rec["name"])}}
		}
		return path, nil
	}

	res, err := r.client.ExecuteRead(ctx, shortestPathCypher, map[string]any{
		"sourceId": sourceID,
		"targetId": targetID,
	})
	if err != nil {
		return domain.ShortestPath{}, fmt.Errorf("shortest path query: %w", err)
	}

	record, ok := res.First()
	if !ok {
		return path, nil
	}
	path.Found = true

	if nodesRaw, ok := record["nodes"].([]any); ok {
		for _, n := range nodesRaw {
			nodeMap, ok := n.(map[string]any)
			if !ok {
				continue
			}
			path.Nodes = append(path.Nodes, domain.PathNode{
				ID:   toString(nodeMap["id"]),
				Kind: toString(nodeMap["kind"]),
				Name: toString(nodeMap["name"]),
			})
		}
	}

	switch v := record["hops"].(type) {
	case int64:
		path.Hops = int(v)
	case int:
		path.Hops = v
	default:
		path.Hops = len(path.Nodes) - 1
	}
	return path, nil
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}
