package services

import (
	"sort"
	"strings"
	"time"

	"github.com/mkravets/jobscout/internal/models"
)

// DatasetService serves the enriched dataset to the web UI: substring
// search, column sort and pagination over an in-memory copy loaded at
// startup. The dataset only changes when an ingestion run rewrites the
// CSV and the server restarts.
type DatasetService struct {
	records []models.EnrichedRecord
}

func NewDatasetService(records []models.EnrichedRecord) *DatasetService {
	return &DatasetService{records: records}
}

// Columns lists the sortable column names in dataset order.
func (s *DatasetService) Columns() []string {
	return []string{"Date", "Location", "Role", "Project description", "Responsibilities", "Requirements", "Additional points", "Category"}
}

func (s *DatasetService) Total() int {
	return len(s.records)
}

// Page returns one page of records after search and sort, plus the total
// page count for the pagination controls.
func (s *DatasetService) Page(search, sortBy, order string, page, pageSize int) ([]models.EnrichedRecord, int) {
	filtered := s.filter(search)

	if sortBy != "" {
		ascending := order == "asc"
		sort.SliceStable(filtered, func(i, j int) bool {
			if ascending {
				return columnLess(filtered[i], filtered[j], sortBy)
			}
			return columnLess(filtered[j], filtered[i], sortBy)
		})
	}

	if pageSize < 1 {
		pageSize = 10
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return nil, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}

func (s *DatasetService) filter(search string) []models.EnrichedRecord {
	if search == "" {
		out := make([]models.EnrichedRecord, len(s.records))
		copy(out, s.records)
		return out
	}

	needle := strings.ToLower(search)
	var out []models.EnrichedRecord
	for _, r := range s.records {
		haystack := strings.ToLower(strings.Join([]string{
			r.Date, r.Location, r.Role, r.ProjectDescription,
			r.Responsibilities, r.Requirements, r.AdditionalPoints, r.Category,
		}, " "))
		if strings.Contains(haystack, needle) {
			out = append(out, r)
		}
	}
	return out
}

func columnLess(a, b models.EnrichedRecord, column string) bool {
	if column == "Date" {
		at, aerr := time.Parse("02.01.2006", a.Date)
		bt, berr := time.Parse("02.01.2006", b.Date)
		if aerr == nil && berr == nil {
			return at.Before(bt)
		}
	}
	return columnValue(a, column) < columnValue(b, column)
}

func columnValue(r models.EnrichedRecord, column string) string {
	switch column {
	case "Date":
		return r.Date
	case "Location":
		return r.Location
	case "Role":
		return r.Role
	case "Project description":
		return r.ProjectDescription
	case "Responsibilities":
		return r.Responsibilities
	case "Requirements":
		return r.Requirements
	case "Additional points":
		return r.AdditionalPoints
	case "Category":
		return r.Category
	}
	return ""
}
