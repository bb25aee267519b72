package db

import (
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/internal/profile"
	"github.com/orgai/hr-assistant/store"
	"github.com/orgai/hr-assistant/store/db/postgres"
	"github.com/orgai/hr-assistant/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
//
// SQLite is the development default and does not support persisted
// embedding vectors; the resolver re-embeds the corpus at startup.
// PostgreSQL is the production driver with pgvector-backed embedding
// persistence.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'postgres' and 'sqlite' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
