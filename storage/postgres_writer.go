package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"aptekonline-scraper/models"
)

// PostgresWriter persists merged pharmacy rows to PostgreSQL. It is an
// optional second sink behind the CSV artifact; the CSV schema stays
// the authoritative contract.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS pharmacies (
			id                  INTEGER PRIMARY KEY,
			name                TEXT NOT NULL DEFAULT '',
			pharmacy_name_main  TEXT NOT NULL DEFAULT '',
			description         TEXT NOT NULL DEFAULT '',
			region              TEXT NOT NULL DEFAULT '',
			address             TEXT NOT NULL DEFAULT '',
			latitude            TEXT NOT NULL DEFAULT '',
			longitude           TEXT NOT NULL DEFAULT '',
			contact_phone       TEXT NOT NULL DEFAULT '',
			pharmacy_tel        TEXT NOT NULL DEFAULT '',
			pharmacy_mob        TEXT NOT NULL DEFAULT '',
			all_phones          TEXT NOT NULL DEFAULT '',
			is_duty_24h         TEXT NOT NULL DEFAULT '',
			has_optika          TEXT NOT NULL DEFAULT '',
			has_optika_service  BOOLEAN NOT NULL DEFAULT FALSE,
			insurance_partners  TEXT NOT NULL DEFAULT '',
			image_url           TEXT NOT NULL DEFAULT '',
			thumb_image         TEXT NOT NULL DEFAULT '',
			gallery_images      TEXT NOT NULL DEFAULT '',
			gallery_count       INTEGER NOT NULL DEFAULT 0,
			google_maps_url     TEXT NOT NULL DEFAULT '',
			page_url            TEXT NOT NULL DEFAULT '',
			scraped_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_pharmacies_region  ON pharmacies(region);
		CREATE INDEX IF NOT EXISTS idx_pharmacies_is_duty ON pharmacies(is_duty_24h);
	`)
	return err
}

// Clear deletes all existing pharmacies from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM pharmacies")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts all merged rows, clearing old data first.
func (pw *PostgresWriter) Write(rows []*models.MergedRow) error {
	if len(rows) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := pw.insertBatch(rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.MergedRow) error {
	const cols = 22
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		ph := make([]string, cols)
		for j := 0; j < cols; j++ {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			r.ID, r.Name, r.PharmacyNameMain, r.Description, r.Region,
			r.Address, r.Latitude, r.Longitude, r.ContactPhone,
			r.PharmacyTel, r.PharmacyMob, r.AllPhones, r.IsDuty24h,
			r.HasOptika, r.HasOptikaService, r.InsurancePartners,
			r.ImageURL, r.ThumbImage, r.GalleryImages, r.GalleryCount,
			r.GoogleMapsURL, r.PageURL)
	}

	query := fmt.Sprintf(`
		INSERT INTO pharmacies (
			id, name, pharmacy_name_main, description, region, address,
			latitude, longitude, contact_phone, pharmacy_tel, pharmacy_mob,
			all_phones, is_duty_24h, has_optika, has_optika_service,
			insurance_partners, image_url, thumb_image, gallery_images,
			gallery_count, google_maps_url, page_url
		)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
