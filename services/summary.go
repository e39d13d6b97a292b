package services

import (
	"fmt"
	"strings"

	"aptekonline-scraper/models"
	"aptekonline-scraper/utils"
)

// maxFailureSamples caps how many failing identifiers the report lists.
const maxFailureSamples = 10

// SummaryService computes and prints the end-of-run report.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate computes run statistics over the merged rows and failures.
func (s *SummaryService) Generate(totalFound int, rows []*models.MergedRow, failures []*models.FailureRecord) *models.RunReport {
	report := &models.RunReport{
		TotalFound: totalFound,
		Scraped:    len(rows),
		Failed:     len(failures),
	}

	for _, r := range rows {
		if r.Latitude != "" {
			report.WithCoords++
		}
		if r.Address != "" {
			report.WithAddress++
		}
		if r.IsDuty24h == "1" {
			report.OnDuty++
		}
		if r.HasOptika == "1" {
			report.WithOptika++
		}
		if r.InsurancePartners != "" {
			report.WithInsurance++
		}
		if r.GalleryCount > 0 {
			report.WithGallery++
		}
	}

	if len(failures) > maxFailureSamples {
		report.FailureSamples = failures[:maxFailureSamples]
	} else {
		report.FailureSamples = failures
	}

	return report
}

// Print renders the report to stdout.
func (s *SummaryService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Pharmacies found      : \033[1m%d\033[0m\n", r.TotalFound)
	fmt.Printf("  Successfully scraped  : \033[1m%d\033[0m\n", r.Scraped)
	fmt.Printf("  Errors                : \033[1m%d\033[0m\n", r.Failed)
	fmt.Println()

	if len(r.FailureSamples) > 0 {
		fmt.Printf("\033[1;33m  Pharmacies with errors\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for _, f := range r.FailureSamples {
			fmt.Printf("  - ID %d: %s\n", f.ID, f.Reason)
		}
		if r.Failed > len(r.FailureSamples) {
			fmt.Printf("  ... and %d more\n", r.Failed-len(r.FailureSamples))
		}
		fmt.Println()
	}

	if r.Scraped > 0 {
		fmt.Printf("\033[1;33m  Field coverage\033[0m\n")
		fmt.Printf("  %s\n", thin)
		s.printStat("With coordinates", r.WithCoords, r.Scraped)
		s.printStat("With address", r.WithAddress, r.Scraped)
		s.printStat("On duty (24h)", r.OnDuty, r.Scraped)
		s.printStat("With optika", r.WithOptika, r.Scraped)
		s.printStat("With insurance info", r.WithInsurance, r.Scraped)
		s.printStat("With gallery images", r.WithGallery, r.Scraped)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func (s *SummaryService) printStat(label string, count, total int) {
	fmt.Printf("  %-22s: %d (%.1f%%)\n", label, count, 100*float64(count)/float64(total))
}
