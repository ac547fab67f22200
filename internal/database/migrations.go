package database

// migrationsSQL contains all database migrations, applied in order by version.
var migrationsSQL = map[int]string{
	1: migrationV1BirthRecords,
}

// migrationV1BirthRecords creates the saved birth record table.
//
// The civil date and time are the identity of a record; the converted
// fields are denormalised so listings need no recomputation.
const migrationV1BirthRecords = `
CREATE TABLE IF NOT EXISTS birth_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    name TEXT NOT NULL,

    -- Civil (Gregorian) birth moment, local time
    birth_date TEXT NOT NULL, -- YYYY-MM-DD
    birth_time TEXT NOT NULL, -- HH:MM

    -- Converted Thai reading
    summary TEXT NOT NULL,
    zodiac TEXT NOT NULL,
    minor_era INTEGER NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (name, birth_date, birth_time)
);

CREATE INDEX IF NOT EXISTS idx_birth_records_birth_date
    ON birth_records(birth_date);
`
