package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mkravets/jobscout/internal/models"
	"github.com/mkravets/jobscout/internal/services"
	"github.com/mkravets/jobscout/internal/vectorstore"
)

type fakeEmbedder struct{}

func (fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

// fakeQdrant records collection-level calls the indexer makes.
type fakeQdrant struct {
	mu          sync.Mutex
	deleted     bool
	createBody  map[string]any
	upsertCalls int
	failUpsert  map[int]bool // 1-based upsert call numbers to fail
	points      []vectorstore.Point
}

func (f *fakeQdrant) server(t *testing.T, collection string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	base := "/collections/" + collection

	mux.HandleFunc("GET "+base+"/exists", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{"exists":true}}`)
	})
	mux.HandleFunc("DELETE "+base, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deleted = true
		f.mu.Unlock()
		fmt.Fprint(w, `{"result":true}`)
	})
	mux.HandleFunc("PUT "+base, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		json.NewDecoder(r.Body).Decode(&f.createBody)
		f.mu.Unlock()
		fmt.Fprint(w, `{"result":true}`)
	})
	mux.HandleFunc("PUT "+base+"/points", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.upsertCalls++
		if f.failUpsert[f.upsertCalls] {
			http.Error(w, "out of disk", http.StatusInternalServerError)
			return
		}
		var body struct {
			Points []vectorstore.Point `json:"points"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.points = append(f.points, body.Points...)
		fmt.Fprint(w, `{"result":{}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func enrichedRecords(n int) []models.EnrichedRecord {
	records := make([]models.EnrichedRecord, n)
	for i := range records {
		records[i] = models.EnrichedRecord{
			Date:               "14.08.2026",
			Location:           "Київ",
			Role:               fmt.Sprintf("role-%03d", i),
			ProjectDescription: "We move freight. Across Europe! Reliably?",
			Requirements:       "Go experience.",
			Category:           "Golang",
		}
	}
	return records
}

func TestRebuildIndex(t *testing.T) {
	fake := &fakeQdrant{}
	srv := fake.server(t, "job-listings")

	indexer := services.NewIndexerService(fakeEmbedder{}, vectorstore.New(srv.URL, ""), "job-listings")

	records := enrichedRecords(65)
	records = append(records, models.EnrichedRecord{Role: "narrative-free"}) // skipped

	summary, err := indexer.RebuildIndex(context.Background(), records)
	if err != nil {
		t.Fatalf("RebuildIndex returned unexpected error: %v", err)
	}

	if summary.Indexed != 65 {
		t.Errorf("Indexed = %d, want 65", summary.Indexed)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if !fake.deleted {
		t.Error("existing collection was not deleted before the rebuild")
	}

	vectors := fake.createBody["vectors"].(map[string]any)
	if size := vectors["size"].(float64); size != services.EmbeddingDimensions {
		t.Errorf("collection created with size %v, want %d", size, services.EmbeddingDimensions)
	}
	if distance := vectors["distance"].(string); distance != "Cosine" {
		t.Errorf("collection created with distance %q, want Cosine", distance)
	}

	// 65 points in batches of 30 -> 30 + 30 + 5.
	if fake.upsertCalls != 3 {
		t.Errorf("upsert batches = %d, want 3", fake.upsertCalls)
	}
	if len(fake.points) != 65 {
		t.Fatalf("collection holds %d points, want 65", len(fake.points))
	}
	for i, p := range fake.points {
		if p.ID != uint64(i) {
			t.Fatalf("point %d has id %d, ids must be dense and sequential", i, p.ID)
		}
	}

	content := fake.points[7].Payload["page_content"].(string)
	if !strings.Contains(content, "Role: role-007") {
		t.Errorf("page_content missing the role footer:\n%s", content)
	}
	if !strings.Contains(content, "Category: Golang") {
		t.Errorf("page_content missing the category footer:\n%s", content)
	}
	// Sentence-boundary rewrap: one sentence per line.
	if !strings.Contains(content, "We move freight.\nAcross Europe!\nReliably?") {
		t.Errorf("narrative not rewrapped on sentence boundaries:\n%s", content)
	}
}

func TestRebuildIndex_FailedBatchDoesNotStopLaterBatches(t *testing.T) {
	fake := &fakeQdrant{failUpsert: map[int]bool{2: true}}
	srv := fake.server(t, "job-listings")

	indexer := services.NewIndexerService(fakeEmbedder{}, vectorstore.New(srv.URL, ""), "job-listings")

	summary, err := indexer.RebuildIndex(context.Background(), enrichedRecords(65))
	if err != nil {
		t.Fatalf("RebuildIndex returned unexpected error: %v", err)
	}

	if fake.upsertCalls != 3 {
		t.Errorf("upsert batches attempted = %d, want 3, a failed batch must not abort the run", fake.upsertCalls)
	}
	if summary.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", summary.Failed())
	}
	if summary.Indexed != 35 {
		t.Errorf("Indexed = %d, want 35 (the partial index is reported, not hidden)", summary.Indexed)
	}
}

func TestRebuildIndex_NothingToIndex(t *testing.T) {
	fake := &fakeQdrant{}
	srv := fake.server(t, "job-listings")

	indexer := services.NewIndexerService(fakeEmbedder{}, vectorstore.New(srv.URL, ""), "job-listings")

	summary, err := indexer.RebuildIndex(context.Background(), []models.EnrichedRecord{{Role: "empty"}})
	if err != nil {
		t.Fatalf("RebuildIndex returned unexpected error: %v", err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("summary = %+v, want 1 skipped and nothing indexed", summary)
	}
	if fake.deleted {
		t.Error("collection must be left untouched when there is nothing to index")
	}
}
