// SPDX-License-Identifier: Apache-2.0

package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sessionlab/go-sogs/migrations"
)

// NewSQLiteStorage opens (or creates) the local database at dsn and
// applies pending migrations. ":memory:" gives a throwaway in-process
// database.
func NewSQLiteStorage(dsn string) (Storage, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := migrations.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteStorage{db: db}, nil
}

// newStorageWithDB wires a storage over an existing handle. Used by tests
// to inject a sqlmock connection.
func newStorageWithDB(db *sql.DB) *sqliteStorage {
	return &sqliteStorage{db: db}
}

// sqliteDSN turns a plain path (or ":memory:") into a connection string
// with foreign keys enabled.
func sqliteDSN(dsn string) string {
	if dsn == "" || dsn == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

type sqliteStorage struct {
	db *sql.DB
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
