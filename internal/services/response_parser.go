package services

import (
	"strings"

	"github.com/mkravets/jobscout/internal/models"
)

// field is the cursor over the closed set of labels the model is asked to
// produce. A line starting with a recognized label moves the cursor; every
// following non-empty line is appended to whichever field is active.
type field int

const (
	fieldNone field = iota
	fieldDate
	fieldLocation
	fieldRole
	fieldProjectDescription
	fieldResponsibilities
	fieldRequirements
	fieldAdditionalPoints
	fieldCategory
)

var fieldLabels = []struct {
	prefix string
	f      field
}{
	{"Date:", fieldDate},
	{"Location:", fieldLocation},
	{"Role:", fieldRole},
	{"Project description:", fieldProjectDescription},
	{"Responsibilities:", fieldResponsibilities},
	{"Requirements:", fieldRequirements},
	{"Additional points:", fieldAdditionalPoints},
	{"Category:", fieldCategory},
}

// ParseExtraction scans a model response line by line and fills an
// EnrichedRecord. Content before the first recognized label is discarded;
// a response with no labels at all yields a record with every field empty.
// The Category value is recorded as-is, without checking it against the
// vocabulary.
func ParseExtraction(content string) models.EnrichedRecord {
	var record models.EnrichedRecord
	current := fieldNone

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if f, value, ok := matchLabel(line); ok {
			*slot(&record, f) = value
			current = f
			continue
		}

		if current == fieldNone {
			continue
		}
		s := slot(&record, current)
		if *s == "" {
			*s = line
		} else {
			*s += " " + line
		}
	}

	return record
}

func matchLabel(line string) (field, string, bool) {
	for _, l := range fieldLabels {
		if strings.HasPrefix(line, l.prefix) {
			return l.f, strings.TrimSpace(strings.TrimPrefix(line, l.prefix)), true
		}
	}
	return fieldNone, "", false
}

func slot(record *models.EnrichedRecord, f field) *string {
	switch f {
	case fieldDate:
		return &record.Date
	case fieldLocation:
		return &record.Location
	case fieldRole:
		return &record.Role
	case fieldProjectDescription:
		return &record.ProjectDescription
	case fieldResponsibilities:
		return &record.Responsibilities
	case fieldRequirements:
		return &record.Requirements
	case fieldAdditionalPoints:
		return &record.AdditionalPoints
	case fieldCategory:
		return &record.Category
	}
	panic("unreachable field")
}
