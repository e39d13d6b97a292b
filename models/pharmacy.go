package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flag is a tolerant boolean-ish value from the listing payload.
// The site emits 0/1 numbers, but strings and booleans have been
// observed in similar payloads, so all three decode without error.
type Flag string

// UnmarshalJSON accepts a JSON number, string, bool or null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag(strings.TrimSpace(s))
	case string(data) == "true":
		*f = "1"
	case string(data) == "false":
		*f = "0"
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = Flag(n.String())
	}
	return nil
}

// Set reports whether the flag carries the truthy value "1".
func (f Flag) Set() bool { return f == "1" }

// String returns the raw flag value as written to the output row.
func (f Flag) String() string { return string(f) }

// ListingEntry holds the partial metadata embedded in the listing page
// for one pharmacy. Created once by the listing resolver and never
// mutated afterwards.
type ListingEntry struct {
	ID           int    `json:"id"`
	ThumbImg     string `json:"thumbImg"`
	PharmacyName string `json:"pharmacyName"`
	PharmacyTel  string `json:"pharmacyTel"`
	PharmacyMob  string `json:"pharmacyMob"`
	IsDuty       Flag   `json:"isduty"`
	Optika       Flag   `json:"optika"`
}

// DetailRecord is the full field set extracted from one pharmacy's own
// page. Every field defaults to its zero value when the source markup
// lacks it; absence never aborts extraction.
type DetailRecord struct {
	ID                int
	Name              string
	Description       string
	Region            string
	Address           string
	ContactPhone      string
	HasOptikaService  bool
	Latitude          string
	Longitude         string
	ImageURL          string
	AllPhones         string
	InsurancePartners string
	GalleryImages     string
	GalleryCount      int
	GoogleMapsURL     string
	PageURL           string
}

// FailureRecord marks one identifier whose fetch or extraction failed.
type FailureRecord struct {
	ID     int
	Reason string
}

// MergedRow is the final per-pharmacy record: a DetailRecord joined
// with its ListingEntry. Listing-sourced duty/optika flags and the
// detail-page optika signal stay separate columns.
type MergedRow struct {
	ID                int
	Name              string
	PharmacyNameMain  string
	Description       string
	Region            string
	Address           string
	Latitude          string
	Longitude         string
	ContactPhone      string
	PharmacyTel       string
	PharmacyMob       string
	AllPhones         string
	IsDuty24h         string
	HasOptika         string
	HasOptikaService  bool
	InsurancePartners string
	ImageURL          string
	ThumbImage        string
	GalleryImages     string
	GalleryCount      int
	GoogleMapsURL     string
	PageURL           string
}

// RunReport holds the end-of-run statistics printed by the summary
// service.
type RunReport struct {
	TotalFound     int
	Scraped        int
	Failed         int
	WithCoords     int
	WithAddress    int
	OnDuty         int
	WithOptika     int
	WithInsurance  int
	WithGallery    int
	FailureSamples []*FailureRecord
}

// BoolColumn renders a detail-sourced boolean the way the output schema
// expects it.
func BoolColumn(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// IntColumn renders an integer cell.
func IntColumn(n int) string { return strconv.Itoa(n) }
