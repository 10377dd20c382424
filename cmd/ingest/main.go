// Command ingest runs one full ingestion cycle:
// fetch every category -> merge with the persisted dataset -> enrich via
// the LLM in rate-limited batches -> rebuild the vector collection.
// Partial failures are logged and tolerated; a crashed run is simply
// restarted from the fetch stage, which the keep-newest merge makes
// idempotent.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/mkravets/jobscout/internal/config"
	"github.com/mkravets/jobscout/internal/scraper"
	"github.com/mkravets/jobscout/internal/services"
	"github.com/mkravets/jobscout/internal/storage"
	"github.com/mkravets/jobscout/internal/vectorstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[ingest] no .env file, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[ingest] config: ", err)
	}

	setupLogFile(cfg.LogFilePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ── FETCHING ───────────────────────────────────────────
	existing, err := storage.LoadRaw(cfg.RawCSVPath)
	if err != nil {
		log.Printf("[ingest] could not read existing dataset: %v, starting empty", err)
	}
	log.Printf("[ingest] loaded %d existing listings from %s", len(existing), cfg.RawCSVPath)

	fetcher := scraper.NewFetcher(cfg.BoardBaseURL, cfg.FetchDelay)
	incoming := fetcher.FetchAll(ctx)
	log.Printf("[ingest] fetched %d listings", len(incoming))

	// ── MERGING ────────────────────────────────────────────
	merged := scraper.Merge(existing, incoming)
	log.Printf("[ingest] %d listings after dedup", len(merged))

	if err := storage.SaveRaw(cfg.RawCSVPath, merged); err != nil {
		log.Printf("[ingest] saving raw dataset failed: %v, continuing", err)
	}

	// ── ENRICHING ──────────────────────────────────────────
	llmService, err := services.NewLLMService(cfg)
	if err != nil {
		log.Fatal("[ingest] llm client: ", err)
	}
	enricher := services.NewEnrichService(llmService, cfg)

	records := enricher.Enrich(ctx, merged)
	log.Printf("[ingest] enriched %d/%d listings", len(records), len(merged))

	if err := storage.SaveEnriched(cfg.EnrichedCSVPath, records); err != nil {
		log.Printf("[ingest] saving enriched dataset failed: %v, continuing", err)
	}

	// ── INDEXING ───────────────────────────────────────────
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Fatal("[ingest] embedder: ", err)
	}

	indexer := services.NewIndexerService(embedder, vectorstore.New(cfg.QdrantURL, cfg.QdrantAPIKey), cfg.QdrantCollection)
	summary, err := indexer.RebuildIndex(ctx, records)
	if err != nil {
		log.Fatal("[ingest] index rebuild: ", err)
	}

	log.Printf("[ingest] run complete: indexed=%d skipped=%d failed_batches=%d",
		summary.Indexed, summary.Skipped, summary.Failed())
	if summary.Failed() > 0 {
		log.Printf("[ingest] WARNING: the index is partial, re-run to rebuild it fully")
	}
}

func buildEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	embedLLM, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(embedLLM)
}

// setupLogFile tees the run log into a file so a failed run can be
// inspected afterwards; per-unit failures only surface there.
func setupLogFile(path string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[ingest] cannot open log file %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
}
