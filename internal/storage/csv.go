// Package storage reads and writes the CSV datasets the pipeline persists
// between stages. Column names are a contract with the files already on
// disk: the raw dataset is keyed by the "Job URL" column, the enriched
// dataset is positional.
package storage

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/mkravets/jobscout/internal/models"
)

// LoadRaw reads the raw listings dataset. A missing file means a first
// run and yields an empty set, not an error.
func LoadRaw(path string) ([]models.RawListing, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var listings []models.RawListing
	if err := gocsv.UnmarshalFile(f, &listings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return listings, nil
}

func SaveRaw(path string, listings []models.RawListing) error {
	return save(path, &listings)
}

// LoadEnriched reads the enriched dataset the web UI browses.
func LoadEnriched(path string) ([]models.EnrichedRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []models.EnrichedRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func SaveEnriched(path string, records []models.EnrichedRecord) error {
	return save(path, &records)
}

func save(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
