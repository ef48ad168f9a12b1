package models

// FieldAbsent is the placeholder rendered in reports when a metadata field
// was missing or could not be parsed.
const FieldAbsent = "N/A"

// ArchiveMetadata is the parsed content of a metadata_* JSON entry inside an
// archive. URL is the only field every archive is expected to carry.
type ArchiveMetadata struct {
	URL          string `json:"URL"`
	Keyword      string `json:"keyword,omitempty"`
	NotifiedDate string `json:"notified_date,omitempty"`
}

// KeywordOr returns the metadata keyword or the fallback when absent.
func (m *ArchiveMetadata) KeywordOr(fallback string) string {
	if m == nil || m.Keyword == "" {
		return fallback
	}
	return m.Keyword
}

// URLOr returns the document URL or the fallback when absent.
func (m *ArchiveMetadata) URLOr(fallback string) string {
	if m == nil || m.URL == "" {
		return fallback
	}
	return m.URL
}

// NotifiedDateOr returns the notification date or the fallback when absent.
func (m *ArchiveMetadata) NotifiedDateOr(fallback string) string {
	if m == nil || m.NotifiedDate == "" {
		return fallback
	}
	return m.NotifiedDate
}

// EmbeddingRecord pairs a document's full file name and source URL with the
// embedding of its final summary.
type EmbeddingRecord struct {
	Name      string    // full file name: {site}/{keyword}/{file_name}
	URL       string    // source URL from the archive metadata
	Embedding []float32 // summary embedding, expected dimension 1536
}

// IndexedDocument is one row of the vector index. All descriptive fields are
// derived positionally from FilePath; rows are written once and never mutated.
type IndexedDocument struct {
	ID          string
	URL         string
	FilePath    string // full file name, the idempotency key
	Website     string
	Keyword     string
	Title       string
	Date        string // ISO date prefix of the file name
	Summary     string
	ChunkVector []float32
}

// Neighbor is one hit of a similarity query. Neighbors are ephemeral and
// recomputed per query, never persisted.
type Neighbor struct {
	FilePath string
	URL      string
	Website  string
	Keyword  string
	Title    string
	Date     string
	Summary  string
	Score    float32
}

// ComparisonReport holds the multi-way comparison between a new document and
// its neighbors. IndividualComparisons[i] and NeighborURLs[i] describe the
// same neighbor, in the order the search returned them.
type ComparisonReport struct {
	CombinedComparison    string
	IndividualComparisons []string
	Keyword               string
	URL                   string
	Date                  string
	NeighborURLs          []string
}
