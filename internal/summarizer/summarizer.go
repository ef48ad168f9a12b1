package summarizer

import (
	"context"
	"fmt"
	"strings"

	"regwatch/internal/llm"
	"regwatch/internal/splitters"
	"regwatch/pkg/logger"
)

// minUsableLength is the decoded-text length at or under which a document is
// treated as empty and skipped without any LLM call.
const minUsableLength = 4

// Summarizer produces hierarchical summaries of documents: chunk level,
// combined, and finalized. Every LLM failure is absorbed at this boundary and
// surfaces to callers as an absent summary, never as an error that could
// abort the batch.
type Summarizer struct {
	model    llm.LLM
	splitter *splitters.TokenSplitter
	pages    *splitters.CharacterSplitter
	log      *logger.Logger
}

// New creates a Summarizer. The token splitter bounds LLM context for
// extracted document text; the character splitter segments raw page text.
func New(model llm.LLM, splitter *splitters.TokenSplitter, pages *splitters.CharacterSplitter, log *logger.Logger) *Summarizer {
	return &Summarizer{model: model, splitter: splitter, pages: pages, log: log}
}

// Summarize runs one completion over text under the given instruction.
func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	return s.model.Complete(ctx, instruction, text)
}

// SummarizeChunks summarizes each chunk in order and returns one summary per
// chunk. A failed chunk yields an empty slot; the remaining chunks are still
// summarized.
func (s *Summarizer) SummarizeChunks(ctx context.Context, chunks []string, instruction string) []string {
	summaries := make([]string, len(chunks))
	for i, chunk := range chunks {
		s.log.Info(fmt.Sprintf("Summarizing chunk %d/%d", i+1, len(chunks)))
		summary, err := s.Summarize(ctx, chunk, instruction)
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to summarize chunk %d/%d: %v", i+1, len(chunks), err))
			continue
		}
		summaries[i] = summary
	}
	return summaries
}

// Combine joins chunk summaries in their original order with blank-line
// separators. No LLM call is made.
func (s *Summarizer) Combine(summaries []string) string {
	kept := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		if summary != "" {
			kept = append(kept, summary)
		}
	}
	return strings.Join(kept, "\n\n")
}

// Finalize runs one more completion over the combined chunk summaries to
// produce the final document summary.
func (s *Summarizer) Finalize(ctx context.Context, combined string) (string, error) {
	return s.model.Complete(ctx, InstructionFinal, combined)
}

// SummarizeDocument runs the full chunk -> combine -> finalize sequence for
// one document's decoded text. The returned bool is false when no summary
// could be produced: empty input, a failed single-chunk summary, or a failed
// finalize pass.
//
// A document that fits in one chunk skips the combine step; its direct chunk
// summary goes straight into the finalize pass.
func (s *Summarizer) SummarizeDocument(ctx context.Context, text string) (string, bool) {
	if len(strings.TrimSpace(text)) <= minUsableLength {
		s.log.Info("Document text is empty, skipping summarization")
		return "", false
	}

	chunks := s.splitter.Split(text)
	s.log.Info(fmt.Sprintf("Text split into %d chunks", len(chunks)))

	var combined string
	if len(chunks) == 1 {
		summary, err := s.Summarize(ctx, chunks[0], InstructionChunk)
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to summarize document: %v", err))
			return "", false
		}
		combined = summary
	} else {
		chunkSummaries := s.SummarizeChunks(ctx, chunks, InstructionChunk)
		combined = s.Combine(chunkSummaries)
	}
	if combined == "" {
		s.log.Error("All chunk summaries failed, skipping document")
		return "", false
	}

	final, err := s.Finalize(ctx, combined)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to finalize summary: %v", err))
		return "", false
	}
	return final, final != ""
}

// SummarizePageText summarizes raw page or paragraph text, the kind produced
// by scraping rather than PDF extraction. The text is segmented into small
// overlapping character windows first; a text that fits one window falls
// through to the token-chunk path.
func (s *Summarizer) SummarizePageText(ctx context.Context, text string) (string, bool) {
	if len(strings.TrimSpace(text)) <= minUsableLength {
		s.log.Info("Page text is empty, skipping summarization")
		return "", false
	}

	pages := s.pages.Split(text)
	if len(pages) <= 1 {
		return s.SummarizeDocument(ctx, text)
	}
	s.log.Info(fmt.Sprintf("Page text segmented into %d windows", len(pages)))

	combined := s.Combine(s.SummarizeChunks(ctx, pages, InstructionChunk))
	if combined == "" {
		s.log.Error("All page summaries failed, skipping document")
		return "", false
	}
	final, err := s.Finalize(ctx, combined)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to finalize page summary: %v", err))
		return "", false
	}
	return final, final != ""
}
