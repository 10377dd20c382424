package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkravets/jobscout/internal/models"
	"github.com/mkravets/jobscout/internal/storage"
)

func TestRawDataset_RoundTripAndHeaderContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_job_listings.csv")

	listings := []models.RawListing{{
		DatePosted:      "14.08.2026",
		JobTitle:        "Senior Go Engineer",
		JobURL:          "https://jobs.example/1",
		CompanyName:     "Acme",
		CompanyURL:      "https://jobs.example/companies/acme",
		Salary:          "Not specified",
		Location:        "Київ, remote",
		ShortInfo:       "Backend services.",
		FullDescription: "Long text with, commas and \"quotes\".",
		Category:        "Golang",
	}}

	if err := storage.SaveRaw(path, listings); err != nil {
		t.Fatalf("SaveRaw returned unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(raw), "\n", 2)[0]
	// "Job URL" is the identity column other tools key on.
	if !strings.Contains(header, "Job URL") {
		t.Errorf("header %q is missing the Job URL identity column", header)
	}
	if !strings.Contains(header, "Date Posted") || !strings.Contains(header, "Full Description") {
		t.Errorf("header %q does not honor the raw dataset column contract", header)
	}

	loaded, err := storage.LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw returned unexpected error: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != listings[0] {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", loaded, listings)
	}
}

func TestLoadRaw_MissingFileMeansFirstRun(t *testing.T) {
	listings, err := storage.LoadRaw(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("missing file yielded %d listings, want 0", len(listings))
	}
}

func TestEnrichedDataset_ColumnContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_jobs.csv")

	records := []models.EnrichedRecord{{
		Date:     "14.08.2026",
		Role:     "Senior Go Engineer",
		Category: "Golang",
	}}

	if err := storage.SaveEnriched(path, records); err != nil {
		t.Fatalf("SaveEnriched returned unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(raw), "\n", 2)[0]
	for _, column := range []string{"Date", "Location", "Role", "Project description", "Responsibilities", "Requirements", "Additional points", "Category"} {
		if !strings.Contains(header, column) {
			t.Errorf("header %q is missing column %q", header, column)
		}
	}
	// The enriched dataset is positional: no identity column.
	if strings.Contains(header, "Job URL") {
		t.Errorf("header %q must not carry an identity column", header)
	}

	loaded, err := storage.LoadEnriched(path)
	if err != nil {
		t.Fatalf("LoadEnriched returned unexpected error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Role != "Senior Go Engineer" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
