// Package history records completed runs in Postgres so report coverage can be audited over time.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DefaultSchema is the schema used when none is given.
const DefaultSchema = "edsd_report"

var schemaPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config selects the target database.
type Config struct {
	URL    string
	Schema string
}

// DateRecord summarizes one processed input date.
type DateRecord struct {
	Date     civil.Date
	Path     string
	Rooms    int // rooms parsed from the file
	Charts   int // charts rendered for the date
	Embedded bool
}

// RunRecord summarizes one invocation.
type RunRecord struct {
	AsOf       civil.Date
	WindowDays int
	RunCount   int
	Rooms      int
	Readings   int
	Duplicates int
	Dates      []DateRecord
}

// URLFromEnv returns EDSD_HISTORY_DB_URL, falling back to DATABASE_URL.
func URLFromEnv() string {
	if value := strings.TrimSpace(os.Getenv("EDSD_HISTORY_DB_URL")); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

func sanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("db schema is required")
	}
	if !schemaPattern.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}
	return value, nil
}

// Record stores rec and returns the generated run id.
func Record(ctx context.Context, cfg Config, rec RunRecord) (string, error) {
	if cfg.URL == "" {
		return "", errors.New("history database url is empty (set EDSD_HISTORY_DB_URL or DATABASE_URL)")
	}
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("ping history db: %w", err)
	}
	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", fmt.Errorf("ensure history schema: %w", err)
	}
	return storeRunTx(ctx, db, rec, schema)
}

func storeRunTx(ctx context.Context, db *sql.DB, rec RunRecord, schema string) (string, error) {
	runID := uuid.New()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.report_runs (
			id, as_of, window_days, run_count, rooms, readings, duplicates, dates_processed
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, schema),
		runID,
		dateValue(rec.AsOf),
		rec.WindowDays,
		rec.RunCount,
		rec.Rooms,
		rec.Readings,
		rec.Duplicates,
		len(rec.Dates),
	)
	if err != nil {
		return "", err
	}

	insertDateSQL := fmt.Sprintf(`
		INSERT INTO %s.report_dates (
			id, run_id, report_date, source_path, rooms, charts, embedded
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`, schema)
	for _, d := range rec.Dates {
		_, err = tx.ExecContext(ctx, insertDateSQL,
			uuid.New(),
			runID,
			dateValue(d.Date),
			d.Path,
			d.Rooms,
			d.Charts,
			d.Embedded,
		)
		if err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return runID.String(), nil
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.report_runs (
			id uuid PRIMARY KEY,
			as_of date NOT NULL,
			window_days integer NOT NULL,
			run_count integer NOT NULL,
			rooms integer NOT NULL,
			readings integer NOT NULL,
			duplicates integer NOT NULL,
			dates_processed integer NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.report_dates (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.report_runs(id) ON DELETE CASCADE,
			report_date date NOT NULL,
			source_path text NOT NULL,
			rooms integer NOT NULL,
			charts integer NOT NULL,
			embedded boolean NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_report_dates_run_idx ON %s.report_dates (run_id)`, schema, schema))
	return err
}

func dateValue(d civil.Date) time.Time {
	return d.In(time.UTC)
}
