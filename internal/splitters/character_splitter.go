package splitters

import "strings"

// characterSeparators is the recursive split priority: paragraph, then line,
// then word, then a hard cut.
var characterSeparators = []string{"\n\n", "\n", " ", ""}

// CharacterSplitter splits page or paragraph text into overlapping
// fixed-size character windows before summarization. It recursively prefers
// larger separators, so a chunk only exceeds ChunkSize when a single atomic
// unit is unavoidably longer than the budget and no separator applies.
type CharacterSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewCharacterSplitter creates a CharacterSplitter, clamping nonsensical
// sizes to the defaults used for regulation page text.
func NewCharacterSplitter(chunkSize, chunkOverlap int) *CharacterSplitter {
	if chunkSize <= 0 {
		chunkSize = 2000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 25
	}
	return &CharacterSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

// Split returns overlapping windows of at most ChunkSize characters.
func (s *CharacterSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	units := s.splitUnits(text, characterSeparators)
	return s.merge(units)
}

// splitUnits recursively breaks text into pieces no larger than ChunkSize,
// trying each separator in priority order before falling back to a hard cut.
func (s *CharacterSplitter) splitUnits(text string, separators []string) []string {
	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return []string{text}
	}

	sep := separators[0]
	if sep == "" {
		var pieces []string
		for start := 0; start < len(runes); start += s.ChunkSize {
			end := start + s.ChunkSize
			if end > len(runes) {
				end = len(runes)
			}
			pieces = append(pieces, string(runes[start:end]))
		}
		return pieces
	}

	parts := strings.SplitAfter(text, sep)
	var units []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len([]rune(part)) > s.ChunkSize {
			units = append(units, s.splitUnits(part, separators[1:])...)
		} else {
			units = append(units, part)
		}
	}
	return units
}

// merge packs units into windows of at most ChunkSize characters, carrying
// the tail of each emitted window into the next as overlap.
func (s *CharacterSplitter) merge(units []string) []string {
	var chunks []string
	var current []rune
	overlapOnly := false

	flush := func() {
		chunk := strings.TrimSpace(string(current))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if s.ChunkOverlap > 0 && len(current) > s.ChunkOverlap {
			current = append([]rune(nil), current[len(current)-s.ChunkOverlap:]...)
			overlapOnly = true
		} else {
			current = nil
		}
	}

	for _, unit := range units {
		unitRunes := []rune(unit)
		if len(current)+len(unitRunes) > s.ChunkSize && len(current) > 0 && !overlapOnly {
			flush()
		}
		current = append(current, unitRunes...)
		overlapOnly = false
	}
	if len(current) > 0 && !overlapOnly {
		flush()
	}
	return chunks
}
