package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Returns the zero time if no known layout matches.
func parseTimestamp(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

const birthRecordColumns = `
	id, name, birth_date, birth_time,
	summary, zodiac, minor_era,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBirthRecord(row rowScanner) (*BirthRecord, error) {
	var rec BirthRecord
	var createdAt, updatedAt string

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.BirthDate,
		&rec.BirthTime,
		&rec.Summary,
		&rec.Zodiac,
		&rec.MinorEra,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	rec.UpdatedAt = parseTimestamp(updatedAt)
	return &rec, nil
}

// querier is satisfied by both *DB and *Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateBirthRecord inserts rec and fills in its ID and timestamps.
// Returns ErrDuplicate if the same name, date and time are already saved.
func (db *DB) CreateBirthRecord(ctx context.Context, rec *BirthRecord) error {
	return insertBirthRecord(ctx, db, rec)
}

// CreateBirthRecord inserts rec inside the transaction.
func (tx *Tx) CreateBirthRecord(ctx context.Context, rec *BirthRecord) error {
	return insertBirthRecord(ctx, tx, rec)
}

func insertBirthRecord(ctx context.Context, q querier, rec *BirthRecord) error {
	query := `
		INSERT INTO birth_records (name, birth_date, birth_time, summary, zodiac, minor_era)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		rec.Name, rec.BirthDate, rec.BirthTime,
		rec.Summary, rec.Zodiac, rec.MinorEra,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert birth record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	saved, err := getBirthRecord(ctx, q, id)
	if err != nil {
		return fmt.Errorf("reload birth record: %w", err)
	}
	*rec = *saved

	return nil
}

// GetBirthRecord retrieves a birth record by ID.
// Returns ErrNotFound if no such record exists.
func (db *DB) GetBirthRecord(ctx context.Context, id int64) (*BirthRecord, error) {
	return getBirthRecord(ctx, db, id)
}

func getBirthRecord(ctx context.Context, q querier, id int64) (*BirthRecord, error) {
	query := `SELECT ` + birthRecordColumns + ` FROM birth_records WHERE id = ?`

	rec, err := scanBirthRecord(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query birth record: %w", err)
	}

	return rec, nil
}

// ImportBirthRecords inserts recs in one transaction. Records already saved
// are skipped when skipDuplicates is set; otherwise the first duplicate
// aborts the whole import. Returns the number inserted.
func (db *DB) ImportBirthRecords(ctx context.Context, recs []BirthRecord, skipDuplicates bool) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		for i := range recs {
			err := tx.CreateBirthRecord(ctx, &recs[i])
			if err != nil {
				if skipDuplicates && IsDuplicate(err) {
					db.logger.Debug("skipping duplicate birth record",
						"name", recs[i].Name, "birth_date", recs[i].BirthDate)
					continue
				}
				return fmt.Errorf("record %d (%s %s): %w", i+1, recs[i].Name, recs[i].BirthDate, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListBirthRecords returns saved records ordered by birth date, then ID.
func (db *DB) ListBirthRecords(ctx context.Context, limit, offset int) ([]BirthRecord, error) {
	query := `
		SELECT ` + birthRecordColumns + `
		FROM birth_records
		ORDER BY birth_date, birth_time, id
		LIMIT ? OFFSET ?
	`

	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query birth records: %w", err)
	}
	defer rows.Close()

	records := []BirthRecord{}
	for rows.Next() {
		rec, err := scanBirthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan birth record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate birth records: %w", err)
	}

	return records, nil
}

// CountBirthRecords returns the number of saved records.
func (db *DB) CountBirthRecords(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM birth_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count birth records: %w", err)
	}
	return count, nil
}

// DeleteBirthRecord removes a record by ID.
// Returns ErrNotFound if nothing was deleted.
func (db *DB) DeleteBirthRecord(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM birth_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete birth record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
