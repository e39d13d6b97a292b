package storage

import "aptekonline-scraper/models"

// RowWriter is the interface any output backend must satisfy.
type RowWriter interface {
	Write(rows []*models.MergedRow) error
	Close() error
}
