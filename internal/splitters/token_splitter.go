package splitters

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenSplitter splits raw text into consecutive, non-overlapping windows of
// at most MaxTokens tokens. It bounds the LLM context for chunk
// summarization, so unlike the page-level CharacterSplitter there is no
// overlap: decoding the windows in order reconstructs the input exactly.
type TokenSplitter struct {
	MaxTokens int
	tokenizer *tiktoken.Tiktoken
}

// NewTokenSplitter creates a new TokenSplitter.
// It uses the "cl100k_base" encoding, shared by the gpt-4 family and
// text-embedding-ada-002.
func NewTokenSplitter(maxTokens int) (*TokenSplitter, error) {
	tke, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got %d", maxTokens)
	}
	return &TokenSplitter{MaxTokens: maxTokens, tokenizer: tke}, nil
}

// Split encodes text into tokens, partitions the token sequence into windows
// of at most MaxTokens, and decodes each window back to text. A text at or
// under the budget comes back as a single chunk equal to the whole input.
func (s *TokenSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	tokens := s.tokenizer.Encode(text, nil, nil)
	if len(tokens) <= s.MaxTokens {
		return []string{text}
	}

	var chunks []string
	for start := 0; start < len(tokens); start += s.MaxTokens {
		end := start + s.MaxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, s.tokenizer.Decode(tokens[start:end]))
	}
	return chunks
}

// CountTokens returns the token length of text under the splitter's encoding.
func (s *TokenSplitter) CountTokens(text string) int {
	return len(s.tokenizer.Encode(text, nil, nil))
}
