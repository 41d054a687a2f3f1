package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration represents a single schema migration.
type Migration struct {
	Version   int
	Name      string
	SQL       string
	AppliedAt time.Time
}

// Migrations is the full, ordered schema of the clinic database. Migrations
// are embedded rather than read from disk so `clinic-server migrate` works
// from a bare binary.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "core_tables",
		SQL: `
CREATE TABLE IF NOT EXISTS doctor (
    id                    TEXT PRIMARY KEY,
    name                  TEXT NOT NULL,
    bmdc_reg_no           TEXT NOT NULL,
    specialization        TEXT NOT NULL DEFAULT '',
    digital_signature_url TEXT NOT NULL DEFAULT '',
    chamber               TEXT NOT NULL DEFAULT '',
    visiting_hours        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS patient (
    id           TEXT PRIMARY KEY,
    patient_code TEXT NOT NULL UNIQUE,
    name_en      TEXT NOT NULL,
    name_bn      TEXT NOT NULL DEFAULT '',
    age          INTEGER NOT NULL DEFAULT 0,
    dob          DATE,
    gender       TEXT NOT NULL DEFAULT '',
    phone        TEXT NOT NULL DEFAULT '',
    address      TEXT NOT NULL DEFAULT '',
    blood_group  TEXT NOT NULL DEFAULT '',
    allergies    TEXT[] NOT NULL DEFAULT '{}',
    weight_kg    DOUBLE PRECISION NOT NULL DEFAULT 0,
    height_cm    DOUBLE PRECISION NOT NULL DEFAULT 0,
    nid          TEXT,
    occupation   TEXT,
    photo_url    TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS medicine (
    id           TEXT PRIMARY KEY,
    generic_name TEXT NOT NULL,
    brand_name   TEXT NOT NULL,
    strength     TEXT NOT NULL DEFAULT '',
    dosage_form  TEXT NOT NULL DEFAULT '',
    company      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS lab_test (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    preparation TEXT
);
`,
	},
	{
		Version: 2,
		Name:    "visit_table",
		SQL: `
CREATE TABLE IF NOT EXISTS visit (
    id                   TEXT PRIMARY KEY,
    patient_id           TEXT NOT NULL REFERENCES patient(id),
    doctor_id            TEXT NOT NULL,
    visit_date           TIMESTAMPTZ NOT NULL,
    clinical_notes       TEXT NOT NULL DEFAULT '',
    diagnosis            TEXT NOT NULL DEFAULT '',
    medicines            JSONB NOT NULL DEFAULT '[]',
    lab_tests            JSONB NOT NULL DEFAULT '[]',
    advice               TEXT NOT NULL DEFAULT '',
    follow_up_date       DATE,
    prescription_version INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_visit_patient_date
    ON visit (patient_id, visit_date DESC);
`,
	},
	{
		Version: 3,
		Name:    "search_indexes",
		SQL: `
CREATE INDEX IF NOT EXISTS idx_patient_name_en ON patient (LOWER(name_en));
CREATE INDEX IF NOT EXISTS idx_patient_phone ON patient (phone);
CREATE INDEX IF NOT EXISTS idx_medicine_brand ON medicine (LOWER(brand_name));
CREATE INDEX IF NOT EXISTS idx_medicine_generic ON medicine (LOWER(generic_name));
CREATE INDEX IF NOT EXISTS idx_lab_test_name ON lab_test (LOWER(name));
`,
	},
}

// Migrator applies embedded migrations against a PostgreSQL database.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []Migration
}

func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool, migrations: Migrations}
}

// EnsureMigrationsTable creates the _migrations tracking table if it does
// not already exist.
func (m *Migrator) EnsureMigrationsTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS _migrations (
    version INTEGER PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    applied_at TIMESTAMPTZ DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("create _migrations table: %w", err)
	}
	return nil
}

// AppliedVersions returns the set of versions that have already been applied.
func (m *Migrator) AppliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM _migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied versions: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied versions: %w", err)
	}

	return applied, nil
}

// Up applies all pending migrations in version order. Each migration runs in
// its own transaction. Returns the count of applied migrations.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return 0, err
	}

	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, mig := range m.migrations {
		if !applied[mig.Version] {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	count := 0
	for _, mig := range pending {
		if err := m.apply(ctx, mig); err != nil {
			return count, fmt.Errorf("apply migration %d (%s): %w", mig.Version, mig.Name, err)
		}
		count++
	}
	return count, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO _migrations (version, name) VALUES ($1, $2)`,
		mig.Version, mig.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit(ctx)
}
