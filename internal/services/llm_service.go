package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/mkravets/jobscout/internal/config"
	"github.com/mkravets/jobscout/internal/models"
)

const (
	extractMaxTokens   = 700
	extractTemperature = 0.2

	// The board prints huge descriptions; only the head carries signal.
	maxDescriptionChars = 1500
)

const extractionPromptTemplate = `Analyze the following job posting and extract its key points. Present them in exactly this format:

Date: %s
Location: %s
Role: %s
Project description: [detailed description of the project]
Responsibilities: [main responsibilities]
Requirements: [candidate requirements]
Additional points: [nice-to-have extras]
Category: [exactly one label from the category list]

The category must be chosen from the following list and contain exactly one of these labels: %s.

Job posting text:
%s
`

// LLMService turns one raw listing into a structured record via a single
// prompt/response round-trip. One client is shared across all calls.
type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the shared completion client.
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.ExtractModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	return &LLMService{Client: llm}, nil
}

// Extract sends one extraction request and parses the labeled response.
// The raw model output is returned alongside the record so the caller can
// log the first few responses for manual quality inspection. An error is
// returned only on transport/API failure; a poorly structured but
// successfully returned answer yields a record with empty fields instead.
func (s *LLMService) Extract(ctx context.Context, raw models.RawListing) (*models.EnrichedRecord, string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, buildExtractionPrompt(raw),
		llms.WithMaxTokens(extractMaxTokens),
		llms.WithTemperature(extractTemperature),
	)
	if err != nil {
		return nil, "", fmt.Errorf("extraction request for %q: %w", raw.JobTitle, err)
	}

	record := ParseExtraction(resp)
	return &record, resp, nil
}

func buildExtractionPrompt(raw models.RawListing) string {
	// Truncate on characters, not bytes: the board's text is mostly
	// Cyrillic, where a byte slice would halve the budget and could cut
	// mid-rune.
	description := raw.FullDescription
	if runes := []rune(description); len(runes) > maxDescriptionChars {
		description = string(runes[:maxDescriptionChars])
	}

	return fmt.Sprintf(extractionPromptTemplate,
		raw.DatePosted,
		raw.Location,
		raw.JobTitle,
		strings.Join(models.Categories, ", "),
		description,
	)
}
