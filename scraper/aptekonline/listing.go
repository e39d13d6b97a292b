package aptekonline

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"aptekonline-scraper/models"
)

// listingPattern anchors on the embedded JSON array the listing page
// carries inline: an array literal whose first element opens with the
// id and thumbImg keys. Matching the substring instead of parsing the
// surrounding page keeps discovery working across unrelated markup
// changes.
var listingPattern = regexp.MustCompile(`\[\{"id":\d+,"thumbImg"[^\]]+\]`)

// resolveListing fetches the listing page and extracts the embedded
// pharmacy entries. Any failure here is fatal to the run: without the
// worklist there is nothing to scrape.
func (s *Scraper) resolveListing(ctx context.Context) ([]*models.ListingEntry, error) {
	url := s.cfg.BaseURL + "/pharmacies"
	s.logger.Info("[listing] Fetching pharmacy list from %s", url)

	body, err := s.fetcher.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}

	raw := listingPattern.Find(body)
	if raw == nil {
		return nil, fmt.Errorf("listing: pharmacy data block not found in page")
	}

	var entries []*models.ListingEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("listing: decode pharmacy data: %w", err)
	}

	// Duplicate ids in the payload would break the one-row-per-id
	// output invariant; first occurrence wins.
	unique := entries[:0]
	for _, e := range entries {
		if s.seenIDs.Add(e.ID) {
			unique = append(unique, e)
		} else {
			s.logger.Debug("[listing] Skipping duplicate id %d", e.ID)
		}
	}

	s.logger.Info("[listing] Found %d pharmacies", len(unique))
	return unique, nil
}
