package main

import (
	"errors"
	"testing"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
)

func TestConvertEntries(t *testing.T) {
	records, err := convertEntries([]entry{
		{Name: "Somchai", Date: "2017-09-01"},
		{Name: "Malee", Date: "1976-04-17", Time: "07:00"},
	})
	if err != nil {
		t.Fatalf("convertEntries() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("convertEntries() returned %d records, want 2", len(records))
	}

	if records[0].BirthTime != "12:00" {
		t.Errorf("BirthTime = %q, want 12:00", records[0].BirthTime)
	}
	if records[0].Summary != "วันศุกร์ ขึ้น 11 ค่ำ เดือน 10 ปี ระกา จ.ศ.1379" {
		t.Errorf("Summary = %q", records[0].Summary)
	}
	if records[1].BirthTime != "07:00" {
		t.Errorf("BirthTime = %q, want 07:00", records[1].BirthTime)
	}
}

func TestConvertEntries_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		want    error
	}{
		{"missing name", []entry{{Date: "2017-09-01"}}, nil},
		{"malformed date", []entry{{Name: "a", Date: "2017/09/01"}}, calendar.ErrInvalidDateTime},
		{"out of range", []entry{{Name: "a", Date: "2100-01-01"}}, calendar.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convertEntries(tt.entries)
			if err == nil {
				t.Fatal("convertEntries() error = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("convertEntries() error = %v, want %v", err, tt.want)
			}
		})
	}
}
