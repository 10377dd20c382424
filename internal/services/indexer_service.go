package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/embeddings"

	"github.com/mkravets/jobscout/internal/models"
	"github.com/mkravets/jobscout/internal/vectorstore"
)

const (
	// EmbeddingDimensions is fixed by the embedding model and baked into
	// the collection schema.
	EmbeddingDimensions = 1536

	upsertBatchSize = 30
)

// BatchResult records the outcome of one upsert batch.
type BatchResult struct {
	Batch  int
	Points int
	Err    error
}

// IndexSummary aggregates what a rebuild actually did. A run with failed
// batches leaves a partial index behind; the summary makes that visible
// to the caller instead of hiding it in logs.
type IndexSummary struct {
	Indexed int
	Skipped int
	Batches []BatchResult
}

// Failed counts upsert batches that did not make it into the collection.
func (s IndexSummary) Failed() int {
	n := 0
	for _, b := range s.Batches {
		if b.Err != nil {
			n++
		}
	}
	return n
}

// IndexerService converts enriched records into embeddings and rebuilds
// the vector collection from scratch. It is the sole writer of the
// collection; the answerer only reads it.
type IndexerService struct {
	embedder   embeddings.Embedder
	store      *vectorstore.Client
	collection string
}

func NewIndexerService(embedder embeddings.Embedder, store *vectorstore.Client, collection string) *IndexerService {
	return &IndexerService{embedder: embedder, store: store, collection: collection}
}

// RebuildIndex destructively replaces the collection with one document per
// record that has a non-empty narrative. Points get dense sequential ids
// starting at 0 and a payload mirroring the record plus its page content.
// A failed upsert batch is recorded in the summary and later batches still
// proceed, so a partial index is a possible outcome of a failed run.
func (s *IndexerService) RebuildIndex(ctx context.Context, records []models.EnrichedRecord) (IndexSummary, error) {
	var summary IndexSummary

	var contents []string
	var payloads []map[string]any
	for _, record := range records {
		narrative := record.Narrative()
		if narrative == "" {
			summary.Skipped++
			continue
		}
		content := pageContent(record, narrative)
		contents = append(contents, content)
		payloads = append(payloads, payload(record, content))
	}

	if len(contents) == 0 {
		log.Printf("[indexer] nothing to index, leaving collection %q untouched", s.collection)
		return summary, nil
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, contents)
	if err != nil {
		return summary, fmt.Errorf("embed %d documents: %w", len(contents), err)
	}

	points := make([]vectorstore.Point, len(vectors))
	for i, vector := range vectors {
		points[i] = vectorstore.Point{ID: uint64(i), Vector: vector, Payload: payloads[i]}
	}

	if err := s.recreateCollection(ctx); err != nil {
		return summary, err
	}

	for i := 0; i < len(points); i += upsertBatchSize {
		end := i + upsertBatchSize
		if end > len(points) {
			end = len(points)
		}
		batch := points[i:end]
		result := BatchResult{Batch: i / upsertBatchSize, Points: len(batch)}

		if err := s.store.UpsertPoints(ctx, s.collection, batch); err != nil {
			result.Err = err
			log.Printf("[indexer] batch %d failed: %v, continuing", result.Batch, err)
		} else {
			summary.Indexed += len(batch)
		}
		summary.Batches = append(summary.Batches, result)
	}

	log.Printf("[indexer] rebuild of %q done: indexed=%d skipped=%d failed_batches=%d",
		s.collection, summary.Indexed, summary.Skipped, summary.Failed())
	return summary, nil
}

func (s *IndexerService) recreateCollection(ctx context.Context) error {
	exists, err := s.store.CollectionExists(ctx, s.collection)
	if err != nil {
		return err
	}
	if exists {
		if err := s.store.DeleteCollection(ctx, s.collection); err != nil {
			return err
		}
	}
	return s.store.CreateCollection(ctx, s.collection, EmbeddingDimensions, vectorstore.DistanceCosine)
}

var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// pageContent builds the human-readable text stored next to each vector:
// the narrative re-wrapped one sentence per line, then a metadata footer.
func pageContent(record models.EnrichedRecord, narrative string) string {
	flat := strings.Join(strings.Fields(narrative), " ")
	wrapped := sentenceBoundary.ReplaceAllString(flat, "$1\n")

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	footer := fmt.Sprintf("\n\nDate: %s\nRole: %s\nLocation: %s\nCategory: %s\n",
		record.Date, record.Role, record.Location, record.Category)

	return strings.Join(lines, "\n") + footer
}

func payload(record models.EnrichedRecord, content string) map[string]any {
	return map[string]any{
		"Date":                record.Date,
		"Location":            record.Location,
		"Role":                record.Role,
		"Project description": record.ProjectDescription,
		"Responsibilities":    record.Responsibilities,
		"Requirements":        record.Requirements,
		"Additional points":   record.AdditionalPoints,
		"Category":            record.Category,
		"page_content":        content,
	}
}
