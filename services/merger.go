package services

import (
	"aptekonline-scraper/models"
	"aptekonline-scraper/utils"
)

// Merger joins detail records with their listing entries by identifier.
type Merger struct {
	logger *utils.Logger
}

// NewMerger creates a Merger with the given logger.
func NewMerger(logger *utils.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge produces one MergedRow per successfully scraped pharmacy. The
// join is keyed, not positional, so detail records may arrive in any
// order. A detail record without a matching listing entry is merged
// against empty listing fields rather than dropped. Listing-sourced
// duty/optika flags and the detail-page optika signal stay separate
// columns; no reconciliation is attempted.
func (m *Merger) Merge(details []*models.DetailRecord, entries []*models.ListingEntry) []*models.MergedRow {
	byID := make(map[int]*models.ListingEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	rows := make([]*models.MergedRow, 0, len(details))
	for _, d := range details {
		row := &models.MergedRow{
			ID:                d.ID,
			Name:              d.Name,
			Description:       d.Description,
			Region:            d.Region,
			Address:           d.Address,
			Latitude:          d.Latitude,
			Longitude:         d.Longitude,
			ContactPhone:      d.ContactPhone,
			AllPhones:         d.AllPhones,
			HasOptikaService:  d.HasOptikaService,
			InsurancePartners: d.InsurancePartners,
			ImageURL:          d.ImageURL,
			GalleryImages:     d.GalleryImages,
			GalleryCount:      d.GalleryCount,
			GoogleMapsURL:     d.GoogleMapsURL,
			PageURL:           d.PageURL,
		}

		if e, ok := byID[d.ID]; ok {
			row.PharmacyNameMain = e.PharmacyName
			row.PharmacyTel = e.PharmacyTel
			row.PharmacyMob = e.PharmacyMob
			row.ThumbImage = e.ThumbImg
			row.IsDuty24h = e.IsDuty.String()
			row.HasOptika = e.Optika.String()
		} else {
			m.logger.Debug("[merger] No listing entry for id %d — using empty listing fields", d.ID)
		}

		rows = append(rows, row)
	}

	m.logger.Info("[merger] Merged %d detail records against %d listing entries", len(rows), len(entries))
	return rows
}
