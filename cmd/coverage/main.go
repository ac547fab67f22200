// Command coverage converts every day of a year range and reports the
// dates that cannot be converted, grouped into contiguous gaps.
//
// Usage:
//
//	go run ./cmd/coverage -start 1757 -end 2077 -hour 0
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
)

// Failure kinds reported for a gap.
const (
	kindOutOfRange = "out_of_range"
	kindPhase      = "phase"
	kindOther      = "other"
)

// Gap is a run of consecutive days that fail for the same reason.
type Gap struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Days  int    `json:"days"`
	Kind  string `json:"kind"`
	Error string `json:"first_error"`
}

// Report summarises one scan.
type Report struct {
	StartYear int   `json:"start_year"`
	EndYear   int   `json:"end_year"`
	Hour      int   `json:"hour"`
	Total     int   `json:"total_days"`
	Converted int   `json:"converted"`
	Failed    int   `json:"failed"`
	Gaps      []Gap `json:"gaps"`
}

func main() {
	startYear := flag.Int("start", calendar.FirstSupportedYear-calendar.BEOffset, "First civil year")
	endYear := flag.Int("end", calendar.LastSupportedYear-calendar.BEOffset, "Last civil year")
	hour := flag.Int("hour", calendar.DefaultHour, "Hour of day to convert at")
	outputFile := flag.String("o", "", "Write the report to a JSON file")
	strict := flag.Bool("strict", false, "Exit non-zero when any day fails")
	flag.Parse()

	if *endYear < *startYear {
		fmt.Fprintf(os.Stderr, "Error: end year %d is before start year %d\n", *endYear, *startYear)
		os.Exit(2)
	}

	fmt.Println("================================================================")
	fmt.Println("Thai Calendar - Conversion Coverage")
	fmt.Println("================================================================")
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, *endYear)
	fmt.Printf("Hour:        %02d:00\n", *hour)
	fmt.Println()

	report := scan(*startYear, *endYear, *hour)
	printReport(report)

	if *outputFile != "" {
		if err := saveReport(*outputFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", *outputFile)
	}

	if *strict && report.Failed > 0 {
		os.Exit(1)
	}
}

// scan converts each day from startYear-01-01 to endYear-12-31 at hour:00.
func scan(startYear, endYear, hour int) Report {
	report := Report{StartYear: startYear, EndYear: endYear, Hour: hour}

	current := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	var open *Gap
	closeGap := func() {
		if open != nil {
			report.Gaps = append(report.Gaps, *open)
			open = nil
		}
	}

	for ; !current.After(end); current = current.AddDate(0, 0, 1) {
		report.Total++

		c := calendar.FromTime(current)
		c.Hour = hour

		_, err := calendar.New(c)
		if err == nil {
			report.Converted++
			closeGap()
			continue
		}

		report.Failed++
		date := current.Format(calendar.DateLayout)
		kind := failureKind(err)

		if open != nil && open.Kind == kind {
			open.To = date
			open.Days++
			continue
		}
		closeGap()
		open = &Gap{From: date, To: date, Days: 1, Kind: kind, Error: err.Error()}
	}
	closeGap()

	return report
}

func failureKind(err error) string {
	switch {
	case calendar.IsOutOfRange(err):
		return kindOutOfRange
	case calendar.IsUnconvertible(err):
		return kindPhase
	default:
		return kindOther
	}
}

func printReport(r Report) {
	fmt.Println("----------------------------------------------------------------")
	fmt.Println("Summary")
	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("Total days:  %d\n", r.Total)
	fmt.Printf("Converted:   %d\n", r.Converted)
	fmt.Printf("Failed:      %d\n", r.Failed)
	if r.Total > 0 {
		fmt.Printf("Coverage:    %.2f%%\n", float64(r.Converted)*100/float64(r.Total))
	}

	if len(r.Gaps) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("----------------------------------------------------------------")
	fmt.Println("Gaps")
	fmt.Println("----------------------------------------------------------------")
	for _, g := range r.Gaps {
		fmt.Printf("%s .. %s  %5d days  %-12s %s\n", g.From, g.To, g.Days, g.Kind, g.Error)
	}
}

func saveReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
