package pipeline

import (
	"context"
	"fmt"
	"path"
	"strings"

	"regwatch/internal/archive"
	"regwatch/internal/embedding"
	"regwatch/internal/models"
	"regwatch/pkg/logger"
)

// Outcome is the terminal state of one document's pipeline run.
type Outcome int

const (
	// OutcomeIndexed means the document went through the full
	// summarize -> embed -> search -> compare -> upsert sequence.
	OutcomeIndexed Outcome = iota
	// OutcomeSkippedIndexed means the idempotency gate found the document
	// already in the index; no LLM call was made.
	OutcomeSkippedIndexed
	// OutcomeSkippedNoSummary means no usable summary could be produced
	// (empty text or LLM failure).
	OutcomeSkippedNoSummary
	// OutcomeSkippedNoEmbedding means the summary could not be embedded.
	OutcomeSkippedNoEmbedding
	// OutcomeSkippedBadPath means the archive name did not carry the
	// site/keyword structure the full file name is derived from.
	OutcomeSkippedBadPath
)

// Coordinator orchestrates the batch: it iterates archives, runs the
// per-document state machine for each PDF, and contains every failure to the
// document or archive it occurred in.
type Coordinator struct {
	source     ArchiveSource
	summarizer DocumentSummarizer
	embedder   embedding.Embedding
	index      DocumentIndex
	comparator Comparator
	reporter   Reporter
	checkpoint Checkpoint
	topK       int
	log        *logger.Logger
}

// NewCoordinator wires the pipeline components together.
func NewCoordinator(
	source ArchiveSource,
	summarizer DocumentSummarizer,
	embedder embedding.Embedding,
	index DocumentIndex,
	comparator Comparator,
	reporter Reporter,
	checkpoint Checkpoint,
	topK int,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		source:     source,
		summarizer: summarizer,
		embedder:   embedder,
		index:      index,
		comparator: comparator,
		reporter:   reporter,
		checkpoint: checkpoint,
		topK:       topK,
		log:        log,
	}
}

// Run processes every archive in the source. A failure in one archive is
// logged and the batch moves on; only listing failures abort the run.
func (c *Coordinator) Run(ctx context.Context) error {
	c.log.Info("Pipeline run started")

	// Most runs find the collection already in place from a prior run, so a
	// creation failure is logged rather than raised.
	if err := c.index.EnsureCollection(ctx); err != nil {
		c.log.Error(fmt.Sprintf("Failed to ensure index collection: %v", err))
	}

	archives, err := c.source.ListArchives(ctx)
	if err != nil {
		return fmt.Errorf("failed to list archives: %w", err)
	}

	resumeAfter, resuming := c.checkpoint.Last(ctx)
	if resuming && !contains(archives, resumeAfter) {
		// The checkpointed archive is gone from the listing; the index
		// idempotency gate makes a full pass safe.
		c.log.Warn(fmt.Sprintf("Checkpointed archive '%s' not listed, starting from the beginning", resumeAfter))
		resuming = false
	}
	if resuming {
		c.log.Info(fmt.Sprintf("Resuming after archive: %s", resumeAfter))
	}

	// The cursor may only move over a contiguous prefix of successes.
	// Advancing past a failed archive would place it behind the resume
	// point, and no later run would ever retry it.
	advancing := true
	for _, name := range archives {
		if resuming {
			if name == resumeAfter {
				resuming = false
			}
			continue
		}
		if err := c.ProcessArchive(ctx, name); err != nil {
			c.log.WithArchive(name).Error(fmt.Sprintf("Failed to process archive: %v", err))
			advancing = false
			continue
		}
		if advancing {
			c.checkpoint.Advance(ctx, name)
		}
	}

	c.log.Info("Pipeline run completed")
	return nil
}

// ProcessArchive downloads and extracts one archive, parses its metadata,
// and runs the per-document pipeline for every PDF entry. Document-level
// failures are contained inside ProcessDocument; only download and
// extraction failures surface here.
func (c *Coordinator) ProcessArchive(ctx context.Context, archiveName string) error {
	log := c.log.WithArchive(archiveName)
	log.Info("Processing archive")

	data, err := c.source.Download(ctx, archiveName)
	if err != nil {
		return err
	}
	names, contents, err := archive.Extract(data)
	if err != nil {
		return err
	}

	metadata := archive.FindMetadata(names, contents)
	if metadata == nil {
		log.Warn("Archive carries no usable metadata; report fields will fall back to N/A")
	}

	for _, name := range names {
		if !isDocumentEntry(name) {
			continue
		}
		c.ProcessDocument(ctx, archiveName, name, contents[name], metadata)
	}

	log.Info("Finished processing archive")
	return nil
}

// ProcessDocument runs the per-document state machine:
//
//	idempotency gate -> decode -> chunk/summarize/finalize -> embed ->
//	neighbor search -> compare -> report -> upsert
//
// Every failure degrades to a skip outcome for this document; nothing
// propagates to the batch loop.
func (c *Coordinator) ProcessDocument(ctx context.Context, archiveName, fileName string, content []byte, metadata *models.ArchiveMetadata) Outcome {
	fullFileName, keyword, ok := fullFileNameFor(archiveName, fileName)
	if !ok {
		c.log.WithArchive(archiveName).Error("Archive name does not carry site/keyword segments, skipping")
		return OutcomeSkippedBadPath
	}
	log := c.log.WithDocument(fullFileName)
	log.Info("Processing document")

	if c.index.IsIndexed(ctx, fullFileName) {
		log.Info("Document is already indexed, skipping")
		return OutcomeSkippedIndexed
	}

	text := archive.DecodeText(content)
	var summary string
	if strings.HasSuffix(fileName, ".txt") {
		summary, ok = c.summarizer.SummarizePageText(ctx, text)
	} else {
		summary, ok = c.summarizer.SummarizeDocument(ctx, text)
	}
	if !ok {
		log.Info("No summary produced, skipping document")
		return OutcomeSkippedNoSummary
	}

	vector, err := c.embedder.Embed(ctx, summary)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to embed summary, skipping document: %v", err))
		return OutcomeSkippedNoEmbedding
	}

	record := models.EmbeddingRecord{
		Name:      fullFileName,
		URL:       metadata.URLOr(models.FieldAbsent),
		Embedding: vector,
	}

	neighbors := c.index.FindNeighbors(ctx, vector, keyword, c.topK)
	if len(neighbors) > 0 {
		comparison := c.comparator.Compare(ctx, summary, neighbors, metadata)
		if err := c.reporter.Deliver(comparison, fullFileName); err != nil {
			log.Error(fmt.Sprintf("Failed to deliver comparison report: %v", err))
		}
	} else {
		log.Info("No neighbors found, skipping comparison and report")
	}

	if err := c.index.Upsert(ctx, []models.EmbeddingRecord{record}, summary); err != nil {
		log.Error(fmt.Sprintf("Failed to index document: %v", err))
	}
	return OutcomeIndexed
}

// isDocumentEntry reports whether a zip entry carries document content.
// The archive's metadata_*.json file is consumed separately; any other
// .json entry is a regular document, as are .pdf and .txt entries.
func isDocumentEntry(name string) bool {
	switch {
	case strings.HasSuffix(name, ".pdf"), strings.HasSuffix(name, ".txt"):
		return true
	case strings.HasSuffix(name, ".json"):
		return !archive.IsMetadataEntry(name)
	}
	return false
}

func contains(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}

// fullFileNameFor derives the composite document key {site}/{keyword}/{file}
// from the archive's directory structure and the PDF's base name.
func fullFileNameFor(archiveName, fileName string) (fullFileName, keyword string, ok bool) {
	parts := strings.Split(archiveName, "/")
	if len(parts) < 2 {
		return "", "", false
	}
	site := parts[0]
	keyword = parts[1]
	return fmt.Sprintf("%s/%s/%s", site, keyword, path.Base(fileName)), keyword, true
}
