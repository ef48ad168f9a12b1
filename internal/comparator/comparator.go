package comparator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"regwatch/internal/llm"
	"regwatch/internal/models"
	"regwatch/internal/summarizer"
	"regwatch/pkg/logger"
)

// comparisonFailed fills a comparison slot whose LLM call did not succeed.
// The remaining slots are unaffected.
const comparisonFailed = "Error comparing summaries."

// SummaryComparator produces the multi-way comparison between a new
// document's summary and the summaries of its nearest neighbors: one broad
// combined comparison plus one terse comparison per neighbor.
type SummaryComparator struct {
	model llm.LLM
	log   *logger.Logger
}

// New creates a SummaryComparator over the given completion model.
func New(model llm.LLM, log *logger.Logger) *SummaryComparator {
	return &SummaryComparator{model: model, log: log}
}

// Compare runs the combined comparison and the per-neighbor comparisons.
// The per-neighbor calls fan out concurrently and land by index, so
// IndividualComparisons[i] and NeighborURLs[i] always describe neighbors[i].
// Metadata may be nil; its fields then render as "N/A".
func (c *SummaryComparator) Compare(ctx context.Context, originalSummary string, neighbors []models.Neighbor, metadata *models.ArchiveMetadata) models.ComparisonReport {
	neighborSummaries := make([]string, len(neighbors))
	neighborURLs := make([]string, len(neighbors))
	for i, neighbor := range neighbors {
		neighborSummaries[i] = neighbor.Summary
		neighborURLs[i] = neighbor.URL
	}

	combined := c.compareOne(ctx, originalSummary,
		strings.Join(neighborSummaries, "\n\n"), summarizer.InstructionComparison)

	individual := make([]string, len(neighbors))
	g, gCtx := errgroup.WithContext(ctx)
	for i := range neighbors {
		i := i
		g.Go(func() error {
			individual[i] = c.compareOne(gCtx, originalSummary,
				neighborSummaries[i], summarizer.InstructionComparisonNeighbor)
			return nil
		})
	}
	// Workers never return errors; failed slots carry the marker string.
	_ = g.Wait()

	return models.ComparisonReport{
		CombinedComparison:    combined,
		IndividualComparisons: individual,
		Keyword:               metadata.KeywordOr(models.FieldAbsent),
		URL:                   metadata.URLOr(models.FieldAbsent),
		Date:                  metadata.NotifiedDateOr(models.FieldAbsent),
		NeighborURLs:          neighborURLs,
	}
}

// compareOne runs a single comparison completion, degrading a failure to the
// marker string.
func (c *SummaryComparator) compareOne(ctx context.Context, originalSummary, neighborSummary, instruction string) string {
	prompt := fmt.Sprintf(
		"Original Summary:\n%s\n\nNeighbor Summary:\n%s\n\nPlease provide the key differences between the original summary and the neighbor summary.",
		originalSummary, neighborSummary)

	result, err := c.model.Complete(ctx, instruction, prompt)
	if err != nil {
		c.log.Error(fmt.Sprintf("Failed to compare summaries: %v", err))
		return comparisonFailed
	}
	return result
}
