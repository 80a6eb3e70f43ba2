package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens the norms database and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:norms.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/mcminorms?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS scales (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  position INTEGER NOT NULL,        -- report order
  disclosure INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT ''     -- csv correction tags; row presence = classified
);

CREATE TABLE IF NOT EXISTS scale_items (
  scale_id TEXT NOT NULL REFERENCES scales(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  item_index INTEGER NOT NULL,      -- 0-based sheet index
  scored_true INTEGER NOT NULL,
  PRIMARY KEY (scale_id, position)
);

CREATE TABLE IF NOT EXISTS base_rates (
  scale_id TEXT NOT NULL REFERENCES scales(id) ON DELETE CASCADE,
  sex TEXT NOT NULL,
  raw INTEGER NOT NULL,
  br INTEGER NOT NULL,
  PRIMARY KEY (scale_id, sex, raw)
);

CREATE TABLE IF NOT EXISTS correction_rules (
  name TEXT PRIMARY KEY,            -- rounding|denial|debasement|defensiveness|inpatient
  data TEXT NOT NULL                -- JSON payload
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS scales (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  position INTEGER NOT NULL,
  disclosure INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS scale_items (
  scale_id TEXT NOT NULL REFERENCES scales(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  item_index INTEGER NOT NULL,
  scored_true INTEGER NOT NULL,
  PRIMARY KEY (scale_id, position)
);

CREATE TABLE IF NOT EXISTS base_rates (
  scale_id TEXT NOT NULL REFERENCES scales(id) ON DELETE CASCADE,
  sex TEXT NOT NULL,
  raw INTEGER NOT NULL,
  br INTEGER NOT NULL,
  PRIMARY KEY (scale_id, sex, raw)
);

CREATE TABLE IF NOT EXISTS correction_rules (
  name TEXT PRIMARY KEY,
  data TEXT NOT NULL
);
`
