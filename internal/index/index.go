package index

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"regwatch/internal/database/milvus"
	"regwatch/internal/models"
	"regwatch/pkg/logger"
)

// Field names of the document collection.
const (
	FieldID       = "id"
	FieldURL      = "url"
	FieldFilePath = "file_path"
	FieldWebsite  = "website"
	FieldKeyword  = "keyword"
	FieldTitle    = "title"
	FieldDate     = "date"
	FieldSummary  = "summary"
	FieldVector   = "chunk_vector"
)

// DocumentIndex manages the vector index of processed regulation documents:
// collection lifecycle, the idempotency lookup, batch upserts, and the
// keyword-scoped nearest-neighbor search.
type DocumentIndex struct {
	client    *milvus.MilvusClient
	dimension int
	log       *logger.Logger
}

// New creates a DocumentIndex over an established Milvus connection.
// dimension is the embedding length every upserted record must have.
func New(client *milvus.MilvusClient, dimension int, log *logger.Logger) *DocumentIndex {
	return &DocumentIndex{client: client, dimension: dimension, log: log}
}

// EnsureCollection creates the collection and vector index if absent and
// loads the collection. Safe to call repeatedly.
func (d *DocumentIndex) EnsureCollection(ctx context.Context) error {
	return d.client.EnsureCollection(ctx)
}

// IsIndexed reports whether a document with the given full file name already
// exists in the index. This is the idempotency gate: it must run before the
// summarize/embed pipeline so re-runs of the batch skip finished documents.
// A query failure degrades to false so one flaky lookup cannot wedge the
// batch; the deterministic document IDs keep a duplicate upsert harmless.
func (d *DocumentIndex) IsIndexed(ctx context.Context, fullFileName string) bool {
	expr := fmt.Sprintf("%s == %q", FieldFilePath, fullFileName)
	result, err := d.client.Client.Query(ctx, d.collection(), nil, expr, []string{FieldID})
	if err != nil {
		d.log.Error(fmt.Sprintf("Failed to check if document is indexed: %v", err))
		return false
	}
	for _, col := range result {
		if col.Name() == FieldID {
			return col.Len() > 0
		}
	}
	return false
}

// Upsert validates and derives index rows from the embedding records and
// submits them as one batch. Records failing validation are dropped
// individually; a service-level failure of the batch upload is returned to
// the caller, which logs it without retrying.
func (d *DocumentIndex) Upsert(ctx context.Context, records []models.EmbeddingRecord, summary string) error {
	docs := make([]models.IndexedDocument, 0, len(records))
	for _, record := range records {
		doc, err := DeriveDocument(record, summary, d.dimension)
		if err != nil {
			d.log.Error(fmt.Sprintf("Dropping record '%s': %v", record.Name, err))
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no valid records to index")
	}

	columns := buildColumns(docs, d.dimension)
	if _, err := d.client.Client.Insert(ctx, d.collection(), "", columns...); err != nil {
		return fmt.Errorf("failed to insert documents: %w", err)
	}
	if err := d.client.Flush(ctx); err != nil {
		return err
	}
	d.log.Info(fmt.Sprintf("Indexed %d document(s)", len(docs)))
	return nil
}

// FindNeighbors runs a vector similarity search scoped to documents sharing
// the query document's keyword and returns up to topK neighbors ordered by
// relevance score descending. A service error degrades to an empty list:
// comparison against zero neighbors is a valid, uninteresting outcome.
func (d *DocumentIndex) FindNeighbors(ctx context.Context, embedding []float32, keyword string, topK int) []models.Neighbor {
	expr := fmt.Sprintf("%s == %q", FieldKeyword, keyword)
	outputFields := []string{FieldFilePath, FieldURL, FieldWebsite, FieldKeyword, FieldTitle, FieldDate, FieldSummary}

	sp, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		d.log.Error(fmt.Sprintf("Failed to build search params: %v", err))
		return nil
	}
	results, err := d.client.Client.Search(
		ctx, d.collection(), nil, expr, outputFields,
		[]entity.Vector{entity.FloatVector(embedding)},
		FieldVector,
		entity.MetricType(d.client.Config.Schema.Index.MetricType),
		topK,
		sp,
	)
	if err != nil {
		d.log.Error(fmt.Sprintf("Failed to find nearest neighbors: %v", err))
		return nil
	}

	var neighbors []models.Neighbor
	for _, res := range results {
		stringData := func(name string) []string {
			for _, field := range res.Fields {
				if field.Name() == name {
					if col, ok := field.(*entity.ColumnVarChar); ok {
						return col.Data()
					}
				}
			}
			return nil
		}

		filePaths := stringData(FieldFilePath)
		urls := stringData(FieldURL)
		websites := stringData(FieldWebsite)
		keywords := stringData(FieldKeyword)
		titles := stringData(FieldTitle)
		dates := stringData(FieldDate)
		summaries := stringData(FieldSummary)

		at := func(data []string, i int) string {
			if i < len(data) {
				return data[i]
			}
			return ""
		}

		for i := 0; i < res.ResultCount; i++ {
			neighbors = append(neighbors, models.Neighbor{
				FilePath: at(filePaths, i),
				URL:      at(urls, i),
				Website:  at(websites, i),
				Keyword:  at(keywords, i),
				Title:    at(titles, i),
				Date:     at(dates, i),
				Summary:  at(summaries, i),
				Score:    res.Scores[i],
			})
		}
	}
	return neighbors
}

// buildColumns lays the derived documents out as one column batch in the
// collection's field order.
func buildColumns(docs []models.IndexedDocument, dimension int) []entity.Column {
	n := len(docs)
	ids := make([]string, n)
	urls := make([]string, n)
	filePaths := make([]string, n)
	websites := make([]string, n)
	keywords := make([]string, n)
	titles := make([]string, n)
	dates := make([]string, n)
	summaries := make([]string, n)
	vectors := make([][]float32, n)
	for i, doc := range docs {
		ids[i] = doc.ID
		urls[i] = doc.URL
		filePaths[i] = doc.FilePath
		websites[i] = doc.Website
		keywords[i] = doc.Keyword
		titles[i] = doc.Title
		dates[i] = doc.Date
		summaries[i] = doc.Summary
		vectors[i] = doc.ChunkVector
	}

	return []entity.Column{
		entity.NewColumnVarChar(FieldID, ids),
		entity.NewColumnVarChar(FieldURL, urls),
		entity.NewColumnVarChar(FieldFilePath, filePaths),
		entity.NewColumnVarChar(FieldWebsite, websites),
		entity.NewColumnVarChar(FieldKeyword, keywords),
		entity.NewColumnVarChar(FieldTitle, titles),
		entity.NewColumnVarChar(FieldDate, dates),
		entity.NewColumnVarChar(FieldSummary, summaries),
		entity.NewColumnFloatVector(FieldVector, dimension, vectors),
	}
}

func (d *DocumentIndex) collection() string {
	return d.client.Config.Schema.CollectionName
}

// DeriveDocument builds the index row for one embedding record. The
// descriptive fields come from positional decomposition of the full file
// name: the first two path segments are website and keyword, the basename's
// first 10 characters are the ISO date, and the remainder before the
// extension is the title. The document ID is a UUIDv5 of the file path, so
// re-upserting the same document writes the same primary key instead of a
// duplicate row.
func DeriveDocument(record models.EmbeddingRecord, summary string, dimension int) (models.IndexedDocument, error) {
	if len(record.Embedding) != dimension {
		return models.IndexedDocument{}, fmt.Errorf(
			"embedding dimension mismatch: expected %d, got %d", dimension, len(record.Embedding))
	}

	parts := strings.Split(record.Name, "/")
	if len(parts) < 3 {
		return models.IndexedDocument{}, fmt.Errorf("malformed full file name: %q", record.Name)
	}
	website := parts[0]
	keyword := parts[1]
	fileName := path.Base(parts[len(parts)-1])

	var date, title string
	if len(fileName) >= 10 {
		date = fileName[:10]
	}
	if len(fileName) > 11 {
		title = strings.TrimSuffix(fileName[11:], path.Ext(fileName))
	}

	return models.IndexedDocument{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(record.Name)).String(),
		URL:         record.URL,
		FilePath:    record.Name,
		Website:     website,
		Keyword:     keyword,
		Title:       title,
		Date:        date,
		Summary:     summary,
		ChunkVector: record.Embedding,
	}, nil
}
