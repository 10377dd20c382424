package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"

	"github.com/mkravets/jobscout/internal/config"
	"github.com/mkravets/jobscout/internal/vectorstore"
)

// NoDocumentsMessage is returned when the collection holds nothing; no
// generation call is made in that case.
const NoDocumentsMessage = "No job listings are indexed yet. Run an ingestion first."

const answerTemperature = 0.5

var answerPrompt = prompts.NewPromptTemplate(
	`Using the provided data, answer the following question as thoroughly and accurately as possible.
Answer only from the data below. Dates are in DD.MM.YYYY format.

Question: {{.question}}

Data:
{{.context}}

Answer:`,
	[]string{"context", "question"},
)

// Scroller reads a working set of indexed documents in bulk.
type Scroller interface {
	Scroll(ctx context.Context, collection string, limit int) ([]vectorstore.ScrolledPoint, error)
}

// SimilaritySearcher is the top-k retrieval capability; the langchaingo
// qdrant store satisfies it.
type SimilaritySearcher interface {
	SimilaritySearch(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error)
}

// ChatService answers a question over the indexed corpus: retrieve a
// working set, assemble a context window, run one generation call. It has
// read-only access to the collection and may observe it mid-rebuild; an
// empty or inconsistent result during a rebuild is an accepted race.
type ChatService struct {
	llm        llms.Model
	scroller   Scroller
	searcher   SimilaritySearcher // nil unless top-k mode is configured
	collection string
	topK       int
	window     int
	timeout    time.Duration
}

func NewChatService(llm llms.Model, scroller Scroller, searcher SimilaritySearcher, cfg *config.Config) *ChatService {
	return &ChatService{
		llm:        llm,
		scroller:   scroller,
		searcher:   searcher,
		collection: cfg.QdrantCollection,
		topK:       cfg.ChatTopK,
		window:     cfg.ChatWindow,
		timeout:    cfg.ChatTimeout,
	}
}

// Answer produces a natural-language answer plus the documents it was
// grounded on.
func (s *ChatService) Answer(ctx context.Context, question string) (string, []schema.Document, error) {
	docs, err := s.retrieve(ctx, question)
	if err != nil {
		return "", nil, fmt.Errorf("retrieve documents: %w", err)
	}
	if len(docs) == 0 {
		return NoDocumentsMessage, nil, nil
	}

	var contextText strings.Builder
	for _, doc := range docs {
		contextText.WriteString(doc.PageContent)
		contextText.WriteString("\n\n")
	}

	prompt, err := answerPrompt.Format(map[string]any{
		"context":  contextText.String(),
		"question": question,
	})
	if err != nil {
		return "", nil, fmt.Errorf("format prompt: %w", err)
	}

	// The interactive path is the one place with an explicit deadline.
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := llms.GenerateFromSinglePrompt(cctx, s.llm, prompt,
		llms.WithTemperature(answerTemperature),
	)
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}

	return answer, docs, nil
}

func (s *ChatService) retrieve(ctx context.Context, question string) ([]schema.Document, error) {
	if s.topK > 0 && s.searcher != nil {
		return s.searcher.SimilaritySearch(ctx, question, s.topK)
	}

	points, err := s.scroller.Scroll(ctx, s.collection, s.window)
	if err != nil {
		return nil, err
	}

	docs := make([]schema.Document, 0, len(points))
	for _, point := range points {
		docs = append(docs, documentFromPayload(point.Payload))
	}
	log.Printf("[chat] scrolled %d documents from %q", len(docs), s.collection)
	return docs, nil
}

func documentFromPayload(payload map[string]any) schema.Document {
	doc := schema.Document{Metadata: make(map[string]any, len(payload))}
	for key, value := range payload {
		if key == "page_content" {
			if content, ok := value.(string); ok {
				doc.PageContent = content
			}
			continue
		}
		doc.Metadata[key] = value
	}
	return doc
}
