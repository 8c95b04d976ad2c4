package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"hotel-scout/models"
)

// PostgresWriter persists one run's filtered listings to PostgreSQL.
type PostgresWriter struct {
	db    *sql.DB
	runID string
	city  string
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter. Connection attempts stop when ctx
// is done.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.PingContext(ctx); err == nil || ctx.Err() != nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hotel_listings (
			id         SERIAL PRIMARY KEY,
			run_id     UUID          NOT NULL,
			city       TEXT          NOT NULL,
			name       TEXT          NOT NULL,
			rating     NUMERIC(5,2),
			price      NUMERIC(12,2),
			currency   VARCHAR(8),
			created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_hotel_listings_run   ON hotel_listings(run_id);
		CREATE INDEX IF NOT EXISTS idx_hotel_listings_city  ON hotel_listings(city);
		CREATE INDEX IF NOT EXISTS idx_hotel_listings_price ON hotel_listings(price);
	`)
	return err
}

// ForRun tags subsequent writes with a run ID and city.
func (pw *PostgresWriter) ForRun(runID, city string) ListingWriter {
	return &PostgresWriter{db: pw.db, runID: runID, city: city}
}

// Write batch-inserts listings for the current run.
func (pw *PostgresWriter) Write(listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	if pw.runID == "" {
		return fmt.Errorf("postgres: write without run id")
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch: %w", err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []models.Listing) error {
	const cols = 6
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			pw.runID, pw.city, l.Name, nullFloat(l.Rating), nullFloat(l.Price), nullString(l.Currency))
	}

	query := fmt.Sprintf(`
		INSERT INTO hotel_listings (run_id, city, name, rating, price, currency)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
