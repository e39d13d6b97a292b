package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aptekonline-scraper/models"
)

// Columns is the fixed output column order. The downstream analysis
// stage depends on these names and this order structurally, so the
// slice is the authoritative schema: record fields outside it are
// never emitted.
var Columns = []string{
	"id",
	"name",
	"pharmacy_name_main",
	"description",
	"region",
	"address",
	"latitude",
	"longitude",
	"contact_phone",
	"pharmacy_tel",
	"pharmacy_mob",
	"all_phones",
	"is_duty_24h",
	"has_optika",
	"has_optika_service",
	"insurance_partners",
	"image_url",
	"thumb_image",
	"gallery_images",
	"gallery_count",
	"google_maps_url",
	"page_url",
}

// CSVWriter writes merged pharmacy rows to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path
// and writes the header row. Intermediate directories are created
// automatically. The file starts with a UTF-8 BOM so spreadsheet tools
// pick up the Azerbaijani text correctly.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write BOM: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(Columns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one CSV row per merged record.
func (c *CSVWriter) Write(rows []*models.MergedRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range rows {
		if err := c.writer.Write(rowValues(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// rowValues renders one record in the Columns order.
func rowValues(r *models.MergedRow) []string {
	return []string{
		models.IntColumn(r.ID),
		r.Name,
		r.PharmacyNameMain,
		r.Description,
		r.Region,
		r.Address,
		r.Latitude,
		r.Longitude,
		r.ContactPhone,
		r.PharmacyTel,
		r.PharmacyMob,
		r.AllPhones,
		r.IsDuty24h,
		r.HasOptika,
		models.BoolColumn(r.HasOptikaService),
		r.InsurancePartners,
		r.ImageURL,
		r.ThumbImage,
		r.GalleryImages,
		models.IntColumn(r.GalleryCount),
		r.GoogleMapsURL,
		r.PageURL,
	}
}
