package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aptekonline-scraper/config"
	"aptekonline-scraper/scraper/aptekonline"
	"aptekonline-scraper/services"
	"aptekonline-scraper/storage"
	"aptekonline-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Aptekonline Pharmacy Scraper starting ===")
	logger.Info("Config — base: %s | concurrency: %d | delay: %dms | timeout: %ds",
		cfg.BaseURL, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.RequestTimeoutS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	var pgWriter *storage.PostgresWriter
	if cfg.PostgresEnabled {
		pgWriter, err = storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()
	}

	scraper := aptekonline.New(cfg, logger)
	entries, details, failures, err := scraper.Scrape(ctx)
	if err != nil {
		logger.Error("Listing resolution failed: %v", err)
		os.Exit(1)
	}

	merger := services.NewMerger(logger)
	rows := merger.Merge(details, entries)

	// Even an all-failed run persists the header so the downstream
	// consumer always finds the schema in place.
	if err := csvWriter.Write(rows); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Saved %d pharmacies to %s", len(rows), cfg.CSVOutputPath)
	}

	if pgWriter != nil {
		if err := pgWriter.Write(rows); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Rows stored in PostgreSQL (table: pharmacies)")
		}
	}

	summary := services.NewSummaryService(logger)
	report := summary.Generate(len(entries), rows, failures)
	summary.Print(report)

	fmt.Printf("  Done. Output → %s (%d rows, %d failures)\n\n",
		cfg.CSVOutputPath, len(rows), len(failures))
}
