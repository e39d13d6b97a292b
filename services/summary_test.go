package services

import (
	"fmt"
	"testing"

	"aptekonline-scraper/models"
)

func TestGenerateReportStats(t *testing.T) {
	s := NewSummaryService(newTestLogger())

	rows := []*models.MergedRow{
		{ID: 1, Latitude: "40.1", Address: "a", IsDuty24h: "1", HasOptika: "1", InsurancePartners: "A", GalleryCount: 2},
		{ID: 2},
		{ID: 3, Address: "b", IsDuty24h: "0"},
	}
	failures := []*models.FailureRecord{{ID: 9, Reason: "HTTP 500"}}

	r := s.Generate(4, rows, failures)

	if r.TotalFound != 4 || r.Scraped != 3 || r.Failed != 1 {
		t.Errorf("counts = (%d, %d, %d); want (4, 3, 1)", r.TotalFound, r.Scraped, r.Failed)
	}
	if r.WithCoords != 1 || r.WithAddress != 2 || r.OnDuty != 1 ||
		r.WithOptika != 1 || r.WithInsurance != 1 || r.WithGallery != 1 {
		t.Errorf("field coverage wrong: %+v", r)
	}
	if len(r.FailureSamples) != 1 || r.FailureSamples[0].ID != 9 {
		t.Errorf("failure samples = %+v; want the single failure", r.FailureSamples)
	}
}

func TestGenerateReportCapsFailureSample(t *testing.T) {
	s := NewSummaryService(newTestLogger())

	var failures []*models.FailureRecord
	for i := 0; i < 25; i++ {
		failures = append(failures, &models.FailureRecord{ID: i, Reason: fmt.Sprintf("err %d", i)})
	}

	r := s.Generate(25, nil, failures)
	if r.Failed != 25 {
		t.Errorf("Failed = %d; want 25", r.Failed)
	}
	if len(r.FailureSamples) != maxFailureSamples {
		t.Errorf("sample size = %d; want %d", len(r.FailureSamples), maxFailureSamples)
	}
}

func TestGenerateReportAllFailed(t *testing.T) {
	s := NewSummaryService(newTestLogger())

	r := s.Generate(2, nil, []*models.FailureRecord{{ID: 1}, {ID: 2}})
	if r.Scraped != 0 || r.Failed != 2 {
		t.Errorf("counts = (%d scraped, %d failed); want (0, 2)", r.Scraped, r.Failed)
	}
	// Printing a zero-success report must not panic (divide-by-zero guard).
	s.Print(r)
}
