package database

import (
	"time"
)

// BirthRecord is a saved civil birth moment together with its Thai reading.
type BirthRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"` // YYYY-MM-DD
	BirthTime string    `json:"birth_time"` // HH:MM
	Summary   string    `json:"summary"`
	Zodiac    string    `json:"zodiac"`
	MinorEra  int       `json:"minor_era"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
