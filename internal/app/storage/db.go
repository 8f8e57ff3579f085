package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// Postgres storage
type DBStorage struct {
	pool *pgxpool.Pool
}

// New postgres storage. Runs pending migrations first
func NewDBStorage(ctx context.Context, dsn string) (*DBStorage, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}

	return &DBStorage{
		pool: pool,
	}, nil
}

// Batch save hits
func (db *DBStorage) BatchSave(ctx context.Context, hits []models.Hit) error {
	batch := &pgx.Batch{}
	for _, h := range hits {
		batch.Queue(
			`INSERT INTO "hits" ("id", "label", "ip", "observed_at", "delivered")
			 VALUES (@id, @label, @ip, @observedAt, @delivered)
			 ON CONFLICT ("id") DO NOTHING`,
			pgx.NamedArgs{
				"id":         h.ID,
				"label":      pgText(h.Label),
				"ip":         pgText(h.IP),
				"observedAt": h.ObservedAt,
				"delivered":  h.Delivered,
			},
		)
	}

	if err := db.pool.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsDataException(pgErr.Code) {
			return fmt.Errorf("failed to batch save hits: %w: %s", ErrRejected, pgErr.Message)
		}
		return fmt.Errorf("failed to batch save hits: %w", err)
	}

	return nil
}

// Postgres text rejects NUL and invalid UTF-8, labels may carry both
func pgText(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", "")
}

// Labels are looked up the way BatchSave stored them
func labelArgs(label string) pgx.NamedArgs {
	return pgx.NamedArgs{"label": pgText(label)}
}

// Find label hits, oldest first
func (db *DBStorage) FindByLabel(ctx context.Context, label string) ([]models.Hit, error) {
	rows, err := db.pool.Query(
		ctx,
		`SELECT "id", "label", "ip", "observed_at", "delivered" FROM "hits"
		 WHERE "label" = @label ORDER BY "observed_at"`,
		labelArgs(label),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hits: %w", err)
	}

	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Hit, error) {
		var h models.Hit
		err := row.Scan(&h.ID, &h.Label, &h.IP, &h.ObservedAt, &h.Delivered)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hits: %w", err)
	}
	if len(hits) == 0 {
		return nil, ErrNotFound
	}

	return hits, nil
}

// Hits count
func (db *DBStorage) HitsCount(ctx context.Context) (int, error) {
	var count int
	row := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM "hits"`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count hits: %w", err)
	}

	return count, nil
}

// Distinct labels count
func (db *DBStorage) LabelsCount(ctx context.Context) (int, error) {
	var count int
	row := db.pool.QueryRow(ctx, `SELECT COUNT(DISTINCT "label") FROM "hits"`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count labels: %w", err)
	}

	return count, nil
}

// Ping
func (db *DBStorage) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close
func (db *DBStorage) Close() {
	db.pool.Close()
}

//go:embed db/migrations/*.sql
var migrationsDir embed.FS

func runMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "db/migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return nil
}
