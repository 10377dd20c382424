package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkravets/jobscout/internal/config"
	"github.com/mkravets/jobscout/internal/models"
)

// Extractor is the single-listing extraction capability the batch
// requester drives. The string return is the raw model output.
type Extractor interface {
	Extract(ctx context.Context, raw models.RawListing) (*models.EnrichedRecord, string, error)
}

// EnrichService drives many extraction calls over a listing set: fixed
// batches processed strictly one after another, with a bounded number of
// concurrent requests inside each batch. Sequential batches bound peak
// memory and give natural checkpoints for logging.
type EnrichService struct {
	extractor     Extractor
	batchSize     int
	maxConcurrent int
	logResponses  int
}

func NewEnrichService(extractor Extractor, cfg *config.Config) *EnrichService {
	s := &EnrichService{
		extractor:     extractor,
		batchSize:     cfg.BatchSize,
		maxConcurrent: cfg.MaxConcurrent,
		logResponses:  cfg.LogResponses,
	}
	if s.batchSize <= 0 {
		s.batchSize = 20
	}
	if s.maxConcurrent <= 0 {
		s.maxConcurrent = 5
	}
	return s
}

// responseLog counts the raw responses logged so far in one run. Run-local
// state, not a process-wide counter: a fresh run starts the count over.
type responseLog struct {
	mu     sync.Mutex
	logged int
	limit  int
}

func (r *responseLog) maybeLog(title, response string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.logged >= r.limit {
		return
	}
	r.logged++
	log.Printf("[enrich] model response for %q:\n%s", title, response)
}

// Enrich extracts structured records for every listing and returns the
// successful ones, in input order. Failed extractions are logged and
// dropped; they never abort the run.
func (s *EnrichService) Enrich(ctx context.Context, listings []models.RawListing) []models.EnrichedRecord {
	results := s.EnrichAll(ctx, listings)

	records := make([]models.EnrichedRecord, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records
}

// EnrichAll is Enrich without the nil filter: the returned slice is
// positional, one entry per input listing, nil where extraction failed.
func (s *EnrichService) EnrichAll(ctx context.Context, listings []models.RawListing) []*models.EnrichedRecord {
	results := make([]*models.EnrichedRecord, len(listings))
	rlog := &responseLog{limit: s.logResponses}

	totalBatches := (len(listings) + s.batchSize - 1) / s.batchSize
	for i := 0; i < len(listings); i += s.batchSize {
		end := i + s.batchSize
		if end > len(listings) {
			end = len(listings)
		}
		batch := listings[i:end]
		batchNum := i/s.batchSize + 1

		log.Printf("[enrich] batch %d/%d (%d listings)", batchNum, totalBatches, len(batch))
		start := time.Now()
		s.enrichBatch(ctx, batch, results[i:end], rlog)
		log.Printf("[enrich] batch %d/%d done in %.2fs", batchNum, totalBatches, time.Since(start).Seconds())
	}

	return results
}

// enrichBatch dispatches up to maxConcurrent extraction requests and
// waits for all of them. A slot frees as soon as a request completes, so
// a queued request starts immediately. Completion order is unspecified;
// results land at the listing's own index.
func (s *EnrichService) enrichBatch(ctx context.Context, batch []models.RawListing, results []*models.EnrichedRecord, rlog *responseLog) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, raw := range batch {
		i, raw := i, raw
		g.Go(func() error {
			record, response, err := s.extractor.Extract(gctx, raw)
			if err != nil {
				// One failed listing is a skip, never an abort.
				log.Printf("[enrich] extraction failed for %q: %v", raw.JobTitle, err)
				return nil
			}
			rlog.maybeLog(raw.JobTitle, response)
			results[i] = record
			return nil
		})
	}

	// Tasks always return nil; Wait is a pure join here.
	_ = g.Wait()
}
