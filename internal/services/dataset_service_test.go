package services_test

import (
	"testing"

	"github.com/mkravets/jobscout/internal/models"
	"github.com/mkravets/jobscout/internal/services"
)

func sampleDataset() *services.DatasetService {
	return services.NewDatasetService([]models.EnrichedRecord{
		{Date: "03.08.2026", Role: "Hardware Lead", Category: "Hardware"},
		{Date: "14.08.2026", Role: "Senior Go Engineer", Category: "Golang"},
		{Date: "10.08.2026", Role: "Go Intern", Category: "Golang"},
	})
}

func TestPage_SortByDateDescending(t *testing.T) {
	records, totalPages := sampleDataset().Page("", "Date", "desc", 1, 10)

	if totalPages != 1 {
		t.Errorf("totalPages = %d, want 1", totalPages)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Date != "14.08.2026" || records[2].Date != "03.08.2026" {
		t.Errorf("dates not sorted chronologically descending: %q, %q, %q",
			records[0].Date, records[1].Date, records[2].Date)
	}
}

func TestPage_Search(t *testing.T) {
	records, _ := sampleDataset().Page("golang", "", "desc", 1, 10)

	if len(records) != 2 {
		t.Fatalf("search matched %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.Category != "Golang" {
			t.Errorf("search leaked record %+v", r)
		}
	}
}

func TestPage_Pagination(t *testing.T) {
	ds := sampleDataset()

	first, totalPages := ds.Page("", "", "desc", 1, 2)
	if totalPages != 2 {
		t.Errorf("totalPages = %d, want 2", totalPages)
	}
	if len(first) != 2 {
		t.Errorf("page 1 holds %d records, want 2", len(first))
	}

	second, _ := ds.Page("", "", "desc", 2, 2)
	if len(second) != 1 {
		t.Errorf("page 2 holds %d records, want 1", len(second))
	}

	beyond, _ := ds.Page("", "", "desc", 5, 2)
	if len(beyond) != 0 {
		t.Errorf("page beyond the end holds %d records, want 0", len(beyond))
	}
}
