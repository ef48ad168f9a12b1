package pipeline

import (
	"context"

	"regwatch/internal/models"
)

// ArchiveSource lists and downloads candidate archives.
type ArchiveSource interface {
	ListArchives(ctx context.Context) ([]string, error)
	Download(ctx context.Context, name string) ([]byte, error)
}

// DocumentSummarizer produces the final summary of one document's text.
// SummarizeDocument handles extracted document text; SummarizePageText
// handles raw page text, which is segmented into character windows first.
// The bool is false when no summary could be produced; the caller then skips
// every downstream step for that document.
type DocumentSummarizer interface {
	SummarizeDocument(ctx context.Context, text string) (string, bool)
	SummarizePageText(ctx context.Context, text string) (string, bool)
}

// DocumentIndex is the view of the vector index the coordinator needs:
// lifecycle, the idempotency gate, upsert, and neighbor search.
type DocumentIndex interface {
	EnsureCollection(ctx context.Context) error
	IsIndexed(ctx context.Context, fullFileName string) bool
	Upsert(ctx context.Context, records []models.EmbeddingRecord, summary string) error
	FindNeighbors(ctx context.Context, embedding []float32, keyword string, topK int) []models.Neighbor
}

// Comparator produces the multi-way comparison against the neighbor set.
type Comparator interface {
	Compare(ctx context.Context, originalSummary string, neighbors []models.Neighbor, metadata *models.ArchiveMetadata) models.ComparisonReport
}

// Reporter delivers one comparison report.
type Reporter interface {
	Deliver(comparison models.ComparisonReport, fullFileName string) error
}

// Checkpoint persists the batch cursor between runs.
type Checkpoint interface {
	Last(ctx context.Context) (string, bool)
	Advance(ctx context.Context, archiveName string)
}
