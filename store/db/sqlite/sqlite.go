package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/orgai/hr-assistant/internal/profile"
	"github.com/orgai/hr-assistant/store"
)

// DB is the SQLite implementation of store.Driver, intended for
// development and small single-instance deployments.
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a SQLite database using the DSN from the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("sqlite", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// SQLite serializes writers; keep a single connection to avoid
	// SQLITE_BUSY under concurrent request handlers.
	db.SetMaxOpenConns(1)

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
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	emp_id INTEGER NOT NULL UNIQUE,
	employee_code TEXT NOT NULL DEFAULT '',
	full_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	department TEXT NOT NULL DEFAULT '',
	designation TEXT NOT NULL DEFAULT '',
	joining_date TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE TABLE IF NOT EXISTS document_request (
	id TEXT PRIMARY KEY,
	document_type INTEGER NOT NULL,
	document_name TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	requester TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	error TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_document_request_requester ON document_request (requester);
`

func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, migrationDDL); err != nil {
		return errors.Wrap(err, "failed to apply migration")
	}
	return nil
}
