// Command import loads birth records from a JSON file into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -json births.json -db data/thaicalendar.db
//
// The file holds an array of {"name", "date", "time"} objects, with the
// time optional. Every entry is converted before anything is written, and
// all rows are inserted in a single transaction.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
	"github.com/zapponejosh/thai-calendar-api/internal/database"
)

func main() {
	jsonPath := flag.String("json", "births.json", "Path to JSON file of birth records")
	dbPath := flag.String("db", "data/thaicalendar.db", "Path to SQLite database")
	skip := flag.Bool("skip-duplicates", false, "Skip records that are already saved")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*jsonPath, *dbPath, *skip, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

// entry is one birth in the import file.
type entry struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

func run(jsonPath, dbPath string, skipDuplicates bool, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	logger.Info("reading JSON file", slog.String("path", jsonPath))

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read JSON file: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	records, err := convertEntries(entries)
	if err != nil {
		return err
	}
	logger.Info("converted entries", slog.Int("records", len(records)))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	inserted, err := db.ImportBirthRecords(ctx, records, skipDuplicates)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	total, err := db.CountBirthRecords(ctx)
	if err != nil {
		return fmt.Errorf("count birth records: %w", err)
	}

	elapsed := time.Since(startTime)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Entries in file:     %d\n", len(entries))
	fmt.Printf("Records inserted:    %d\n", inserted)
	fmt.Printf("Skipped duplicates:  %d\n", len(records)-inserted)
	fmt.Printf("Records in database: %d\n", total)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// convertEntries converts every entry, failing on the first that cannot be
// read or converted.
func convertEntries(entries []entry) ([]database.BirthRecord, error) {
	records := make([]database.BirthRecord, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: name is required", i+1)
		}

		td, err := calendar.Convert(e.Date, e.Time)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Name, err)
		}

		civil := td.Civil().Time()
		records = append(records, database.BirthRecord{
			Name:      e.Name,
			BirthDate: civil.Format(calendar.DateLayout),
			BirthTime: civil.Format(calendar.TimeLayout),
			Summary:   td.Summary(),
			Zodiac:    td.Zodiac().Key(),
			MinorEra:  td.MinorEra(),
		})
	}
	return records, nil
}
