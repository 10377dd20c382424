package scraper

import "github.com/mkravets/jobscout/internal/models"

// Merge combines a previously persisted listing set with a freshly fetched
// one, keeping exactly one listing per Job URL. When both sets carry the
// same URL the incoming version wins, which makes re-running a fetch cycle
// idempotent. Pure function, no I/O.
func Merge(existing, incoming []models.RawListing) []models.RawListing {
	merged := make([]models.RawListing, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, l := range existing {
		upsert(&merged, index, l)
	}
	for _, l := range incoming {
		upsert(&merged, index, l)
	}

	return merged
}

func upsert(merged *[]models.RawListing, index map[string]int, l models.RawListing) {
	if i, ok := index[l.JobURL]; ok {
		(*merged)[i] = l
		return
	}
	index[l.JobURL] = len(*merged)
	*merged = append(*merged, l)
}
