package services_test

import (
	"testing"

	"github.com/mkravets/jobscout/internal/services"
)

const fullResponse = `Date: 14.08.2026
Location: Київ, remote
Role: Senior Go Engineer
Project description: A logistics platform
moving freight across Europe.
Responsibilities: Design and ship backend services.
Requirements: 5+ years of Go.
Additional points: Stock options.
Category: Golang`

func TestParseExtraction_AllSections(t *testing.T) {
	record := services.ParseExtraction(fullResponse)

	if record.Date != "14.08.2026" {
		t.Errorf("Date = %q", record.Date)
	}
	if record.Location != "Київ, remote" {
		t.Errorf("Location = %q", record.Location)
	}
	if record.Role != "Senior Go Engineer" {
		t.Errorf("Role = %q", record.Role)
	}
	// Continuation lines are space-joined onto the active field.
	if record.ProjectDescription != "A logistics platform moving freight across Europe." {
		t.Errorf("ProjectDescription = %q", record.ProjectDescription)
	}
	if record.Responsibilities != "Design and ship backend services." {
		t.Errorf("Responsibilities = %q", record.Responsibilities)
	}
	if record.Requirements != "5+ years of Go." {
		t.Errorf("Requirements = %q", record.Requirements)
	}
	if record.AdditionalPoints != "Stock options." {
		t.Errorf("AdditionalPoints = %q", record.AdditionalPoints)
	}
	if record.Category != "Golang" {
		t.Errorf("Category = %q", record.Category)
	}
}

func TestParseExtraction_MissingLabelYieldsEmptyField(t *testing.T) {
	record := services.ParseExtraction("Role: Designer\nCategory: Design")

	if record.Role != "Designer" || record.Category != "Design" {
		t.Errorf("parsed fields wrong: %+v", record)
	}
	if record.Date != "" || record.Requirements != "" {
		t.Errorf("missing labels should stay empty strings, got Date=%q Requirements=%q",
			record.Date, record.Requirements)
	}
}

func TestParseExtraction_DiscardsLeadingContent(t *testing.T) {
	record := services.ParseExtraction("Sure! Here is the breakdown you asked for:\n\nRole: QA Engineer")

	if record.Role != "QA Engineer" {
		t.Errorf("Role = %q", record.Role)
	}
	if record.ProjectDescription != "" {
		t.Errorf("preamble leaked into a field: %q", record.ProjectDescription)
	}
}

func TestParseExtraction_NoLabelsAtAll(t *testing.T) {
	record := services.ParseExtraction("The model refused to cooperate today.")

	if record != (services.ParseExtraction("")) {
		t.Errorf("label-free response should yield an all-empty record, got %+v", record)
	}
}

// There is no vocabulary validation on Category: an out-of-vocabulary
// label is recorded as-is. This is a known design gap; the test pins the
// current behavior rather than endorsing it.
func TestParseExtraction_OutOfVocabularyCategoryKeptAsIs(t *testing.T) {
	inVocab := services.ParseExtraction("Category: Golang")
	if inVocab.Category != "Golang" {
		t.Errorf("Category = %q, want %q", inVocab.Category, "Golang")
	}

	outOfVocab := services.ParseExtraction("Category: Underwater Basket Weaving")
	if outOfVocab.Category != "Underwater Basket Weaving" {
		t.Errorf("Category = %q, out-of-vocabulary values are recorded unchanged", outOfVocab.Category)
	}
}

func TestParseExtraction_ValueOnLabelLineIsTrimmed(t *testing.T) {
	record := services.ParseExtraction("Requirements:    whitespace everywhere   ")

	if record.Requirements != "whitespace everywhere" {
		t.Errorf("Requirements = %q", record.Requirements)
	}
}
