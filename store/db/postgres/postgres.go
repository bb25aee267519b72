package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/internal/profile"
	"github.com/orgai/hr-assistant/store"
)

// DB is the PostgreSQL implementation of store.Driver. It is the
// production driver and the only one supporting persisted embedding
// vectors (pgvector extension).
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection using the DSN from the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() any {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const migrationDDL = `
CREATE TABLE IF NOT EXISTS employee (
	id SERIAL PRIMARY KEY,
	emp_id INTEGER NOT NULL UNIQUE,
	employee_code TEXT NOT NULL DEFAULT '',
	full_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	department TEXT NOT NULL DEFAULT '',
	designation TEXT NOT NULL DEFAULT '',
	joining_date TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
);

CREATE TABLE IF NOT EXISTS document_request (
	id TEXT PRIMARY KEY,
	document_type INTEGER NOT NULL,
	document_name TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	requester TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	error TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
);

CREATE INDEX IF NOT EXISTS idx_document_request_requester ON document_request (requester);
`

// qaEmbeddingDDL requires the pgvector extension; applied separately so
// a database without the extension still gets the relational tables.
const qaEmbeddingDDL = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS qa_embedding (
	id SERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	embedding vector(1536) NOT NULL,
	model TEXT NOT NULL,
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
	UNIQUE (question, model)
);
`

func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, migrationDDL); err != nil {
		return errors.Wrap(err, "failed to apply migration")
	}
	if _, err := d.db.ExecContext(ctx, qaEmbeddingDDL); err != nil {
		// Embedding persistence is optional; the resolver re-embeds
		// the corpus when the cache is unavailable.
		return errors.Wrap(err, "failed to apply qa_embedding migration (is pgvector installed?)")
	}
	return nil
}

// placeholder returns the n-th PostgreSQL placeholder ($1, $2, ...).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n comma-separated placeholders starting at $1.
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}
