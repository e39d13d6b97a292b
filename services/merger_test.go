package services

import (
	"testing"

	"aptekonline-scraper/models"
	"aptekonline-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func TestMergeJoinsByID(t *testing.T) {
	m := NewMerger(newTestLogger())

	entries := []*models.ListingEntry{
		{ID: 1, PharmacyName: "Aptek One", PharmacyTel: "012-1", PharmacyMob: "050-1", ThumbImg: "/t1.jpg", IsDuty: "1", Optika: "0"},
		{ID: 2, PharmacyName: "Aptek Two", IsDuty: "0", Optika: "1"},
		{ID: 3, PharmacyName: "Aptek Three"},
	}
	// Detail order intentionally differs from listing order.
	details := []*models.DetailRecord{
		{ID: 2, Name: "Two", HasOptikaService: true},
		{ID: 1, Name: "One", Latitude: "40.1", Longitude: "49.2", GoogleMapsURL: "https://www.google.com/maps?q=40.1,49.2"},
	}

	rows := m.Merge(details, entries)
	if len(rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(rows))
	}

	byID := map[int]*models.MergedRow{}
	for _, r := range rows {
		if byID[r.ID] != nil {
			t.Fatalf("id %d produced more than one row", r.ID)
		}
		byID[r.ID] = r
	}

	one := byID[1]
	if one == nil {
		t.Fatal("no row for id 1")
	}
	if one.PharmacyNameMain != "Aptek One" || one.PharmacyTel != "012-1" ||
		one.PharmacyMob != "050-1" || one.ThumbImage != "/t1.jpg" {
		t.Errorf("listing fields not carried into row: %+v", one)
	}
	if one.IsDuty24h != "1" || one.HasOptika != "0" {
		t.Errorf("listing flags = (%q, %q); want (1, 0)", one.IsDuty24h, one.HasOptika)
	}

	two := byID[2]
	if two == nil {
		t.Fatal("no row for id 2")
	}
	// Detail-sourced optika signal stays its own column.
	if !two.HasOptikaService || two.HasOptika != "1" {
		t.Errorf("optika columns = (detail %v, listing %q); want (true, 1)", two.HasOptikaService, two.HasOptika)
	}

	// Entry 3 had no successful detail record: no row.
	if byID[3] != nil {
		t.Error("row produced for id 3 despite no detail record")
	}
}

func TestMergeWithoutListingEntry(t *testing.T) {
	m := NewMerger(newTestLogger())

	details := []*models.DetailRecord{{ID: 99, Name: "Orphan"}}
	rows := m.Merge(details, nil)

	if len(rows) != 1 {
		t.Fatalf("got %d rows; want 1 — orphan details are kept, not dropped", len(rows))
	}
	r := rows[0]
	if r.PharmacyNameMain != "" || r.PharmacyTel != "" || r.IsDuty24h != "" || r.ThumbImage != "" {
		t.Errorf("listing fields should be empty for orphan row: %+v", r)
	}
	if r.Name != "Orphan" {
		t.Errorf("Name = %q; want %q", r.Name, "Orphan")
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	m := NewMerger(newTestLogger())
	if rows := m.Merge(nil, nil); len(rows) != 0 {
		t.Errorf("got %d rows from empty inputs; want 0", len(rows))
	}
}
