package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/vanshika/sixdegrees/internal/domain"
)

const (
	defaultExportWorkers = 4
	defaultExportBatch   = 1000
)

// MirrorRepository persists the credit graph into a graph database.
type MirrorRepository interface {
	EnsureSchema(ctx context.Context) error
	UpsertTitles(ctx context.Context, titles []domain.Title) error
	UpsertPersons(ctx context.Context, persons []domain.Person) error
	UpsertCredits(ctx context.Context, credits []domain.Credit) error
}

// Snapshot is the enumerable content of a frozen credit graph.
type Snapshot interface {
	Persons() iter.Seq2[string, string]
	Titles() iter.Seq2[string, string]
	Credits() iter.Seq2[string, string]
}

// ExportSummary counts what was sent to the mirror.
type ExportSummary struct {
	Titles  int
	Persons int
	Credits int
	Batches int
}

// BulkExporter mirrors a credit graph into a graph database in batches,
// using a pool of workers per phase.
type BulkExporter struct {
	repo      MirrorRepository
	logger    *slog.Logger
	workers   int
	batchSize int
}

// NewBulkExporter creates a BulkExporter. Non-positive workers or batchSize
// select the defaults.
func NewBulkExporter(repo MirrorRepository, logger *slog.Logger, workers, batchSize int) *BulkExporter {
	if workers <= 0 {
		workers = defaultExportWorkers
	}
	if batchSize <= 0 {
		batchSize = defaultExportBatch
	}
	return &BulkExporter{
		repo:      repo,
		logger:    logger,
		workers:   workers,
		batchSize: batchSize,
	}
}

// Export writes titles, then persons, then credits. Credits are deduplicated
// since the mirror stores at most one relationship per pair.
func (e *BulkExporter) Export(ctx context.Context, snap Snapshot) (ExportSummary, error) {
	var summary ExportSummary

	if err := e.repo.EnsureSchema(ctx); err != nil {
		return summary, err
	}

	var titles []domain.Title
	for id, name := range snap.Titles() {
		titles = append(titles, domain.Title{ID: id, Name: name})
	}
	n, err := exportBatches(ctx, e, "titles", titles, e.repo.UpsertTitles)
	summary.Batches += n
	if err != nil {
		return summary, err
	}
	summary.Titles = len(titles)

	var persons []domain.Person
	for id, name := range snap.Persons() {
		persons = append(persons, domain.Person{ID: id, Name: name})
	}
	n, err = exportBatches(ctx, e, "persons", persons, e.repo.UpsertPersons)
	summary.Batches += n
	if err != nil {
		return summary, err
	}
	summary.Persons = len(persons)

	seen := make(map[domain.Credit]struct{})
	var credits []domain.Credit
	for personID, titleID := range snap.Credits() {
		c := domain.Credit{PersonID: personID, TitleID: titleID}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		credits = append(credits, c)
	}
	n, err = exportBatches(ctx, e, "credits", credits, e.repo.UpsertCredits)
	summary.Batches += n
	if err != nil {
		return summary, err
	}
	summary.Credits = len(credits)

	return summary, nil
}

func exportBatches[T any](ctx context.Context, e *BulkExporter, phase string, items []T, upsert func(context.Context, []T) error) (int, error) {
	batches := chunk(items, e.batchSize)
	e.logger.Info("exporting", "phase", phase, "items", len(items), "batches", len(batches), "workers", e.workers)
	err := runPool(ctx, e.workers, len(batches), func(idx int) error {
		if err := upsert(ctx, batches[idx]); err != nil {
			return fmt.Errorf("%s batch %d: %w", phase, idx, err)
		}
		return nil
	})
	return len(batches), err
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
