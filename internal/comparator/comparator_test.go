package comparator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"regwatch/internal/models"
	"regwatch/pkg/logger"
)

// fakeLLM echoes a marker derived from the prompt so tests can check which
// neighbor a comparison slot belongs to. failOn makes prompts containing
// that substring fail.
type fakeLLM struct {
	mu     sync.Mutex
	calls  int
	failOn string
}

func (f *fakeLLM) Complete(ctx context.Context, instruction, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failOn != "" && strings.Contains(prompt, f.failOn) {
		return "", errors.New("model unavailable")
	}
	return "compared: " + prompt, nil
}

func testNeighbors(n int) []models.Neighbor {
	neighbors := make([]models.Neighbor, n)
	for i := range neighbors {
		neighbors[i] = models.Neighbor{
			Summary: "neighbor-" + string(rune('a'+i)),
			URL:     "https://example.org/doc-" + string(rune('a'+i)),
		}
	}
	return neighbors
}

func TestCompareSlotsLandByIndex(t *testing.T) {
	model := &fakeLLM{}
	c := New(model, logger.New("ComparatorTest"))

	neighbors := testNeighbors(5)
	report := c.Compare(context.Background(), "original", neighbors, nil)

	if len(report.IndividualComparisons) != 5 {
		t.Fatalf("expected 5 comparison slots, got %d", len(report.IndividualComparisons))
	}
	for i, comparison := range report.IndividualComparisons {
		if !strings.Contains(comparison, neighbors[i].Summary) {
			t.Errorf("slot %d does not describe neighbor %d: %q", i, i, comparison)
		}
		if report.NeighborURLs[i] != neighbors[i].URL {
			t.Errorf("slot %d carries URL %q, want %q", i, report.NeighborURLs[i], neighbors[i].URL)
		}
	}
	// One combined call plus one per neighbor.
	if model.calls != 6 {
		t.Fatalf("expected 6 LLM calls, got %d", model.calls)
	}
}

func TestCompareCombinedSeesAllNeighbors(t *testing.T) {
	model := &fakeLLM{}
	c := New(model, logger.New("ComparatorTest"))

	neighbors := testNeighbors(3)
	report := c.Compare(context.Background(), "original", neighbors, nil)
	for _, neighbor := range neighbors {
		if !strings.Contains(report.CombinedComparison, neighbor.Summary) {
			t.Errorf("combined comparison is missing %q", neighbor.Summary)
		}
	}
}

func TestCompareFailedSlotCarriesMarker(t *testing.T) {
	model := &fakeLLM{failOn: "neighbor-b"}
	c := New(model, logger.New("ComparatorTest"))

	neighbors := testNeighbors(3)
	report := c.Compare(context.Background(), "original", neighbors, nil)

	if report.IndividualComparisons[1] != "Error comparing summaries." {
		t.Fatalf("expected the failure marker in slot 1, got %q", report.IndividualComparisons[1])
	}
	for _, i := range []int{0, 2} {
		if report.IndividualComparisons[i] == "Error comparing summaries." {
			t.Errorf("slot %d must not be affected by slot 1's failure", i)
		}
	}
	// The combined prompt contains every neighbor summary, so it fails too
	// and degrades to the marker rather than aborting.
	if report.CombinedComparison != "Error comparing summaries." {
		t.Fatalf("expected the failure marker for the combined comparison, got %q", report.CombinedComparison)
	}
}

func TestCompareMetadataFallsBackToAbsent(t *testing.T) {
	c := New(&fakeLLM{}, logger.New("ComparatorTest"))

	report := c.Compare(context.Background(), "original", testNeighbors(1), nil)
	if report.Keyword != models.FieldAbsent || report.URL != models.FieldAbsent || report.Date != models.FieldAbsent {
		t.Fatalf("nil metadata must render as %q, got %+v", models.FieldAbsent, report)
	}

	metadata := &models.ArchiveMetadata{URL: "https://example.org/original", Keyword: "emissions", NotifiedDate: "2025-06-01"}
	report = c.Compare(context.Background(), "original", testNeighbors(1), metadata)
	if report.Keyword != "emissions" || report.URL != "https://example.org/original" || report.Date != "2025-06-01" {
		t.Fatalf("metadata fields not carried into the report: %+v", report)
	}
}
