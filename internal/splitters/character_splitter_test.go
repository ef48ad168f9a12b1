package splitters

import (
	"strings"
	"testing"
)

func TestCharacterSplitterBlankText(t *testing.T) {
	s := NewCharacterSplitter(100, 10)
	if chunks := s.Split("   \n\n  "); chunks != nil {
		t.Fatalf("expected no chunks for blank text, got %v", chunks)
	}
}

func TestCharacterSplitterShortTextSingleChunk(t *testing.T) {
	s := NewCharacterSplitter(100, 10)
	text := "Short notice about a consultation deadline."
	chunks := s.Split(text)
	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected the input back as one chunk, got %v", chunks)
	}
}

func TestCharacterSplitterPrefersParagraphBreaks(t *testing.T) {
	s := NewCharacterSplitter(50, 0)
	text := "First paragraph of the notice.\n\nSecond paragraph with the operative text."
	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "First paragraph") {
		t.Errorf("unexpected first chunk: %q", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "Second paragraph") {
		t.Errorf("unexpected second chunk: %q", chunks[1])
	}
}

func TestCharacterSplitterOverlapCarriesTail(t *testing.T) {
	s := NewCharacterSplitter(20, 5)
	text := strings.Repeat("abcde ", 10)
	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1]
		if len(prevTail) > s.ChunkOverlap {
			prevTail = prevTail[len(prevTail)-s.ChunkOverlap:]
		}
		if !strings.Contains(chunks[i], strings.TrimSpace(prevTail)) {
			t.Errorf("chunk %d does not carry the previous tail %q: %q", i, prevTail, chunks[i])
		}
	}
}

func TestCharacterSplitterHardCutWithoutSeparators(t *testing.T) {
	s := NewCharacterSplitter(10, 0)
	text := strings.Repeat("x", 35)
	chunks := s.Split(text)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d: %v", len(chunks), chunks)
	}
	for i, chunk := range chunks {
		if len(chunk) > 10 {
			t.Errorf("chunk %d exceeds the size budget: %q", i, chunk)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Fatal("hard-cut chunks do not reconstruct the input")
	}
}

func TestNewCharacterSplitterClampsBadValues(t *testing.T) {
	s := NewCharacterSplitter(0, -1)
	if s.ChunkSize != 2000 || s.ChunkOverlap != 25 {
		t.Fatalf("expected defaults 2000/25, got %d/%d", s.ChunkSize, s.ChunkOverlap)
	}
	s = NewCharacterSplitter(100, 100)
	if s.ChunkOverlap != 25 {
		t.Fatalf("overlap >= size must fall back to default, got %d", s.ChunkOverlap)
	}
}
