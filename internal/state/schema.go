package state

import (
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/culturedeck/internal/db"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER
		);
	`)
	if err != nil {
		return errors.Wrap(err, "create schema")
	}

	_, err = conn.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return errors.Wrap(err, "record schema version")
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func putValue(conn execer, key, value string, updatedAt int64) error {
	_, err := conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, updatedAt)
	return errors.Wrapf(err, "write %q", key)
}

func getValue(conn *sql.DB, key string) (string, int64, bool, error) {
	var (
		value     string
		updatedAt sql.NullInt64
	)
	err := conn.QueryRow(`SELECT value, updated_at FROM kv WHERE key = ?`, key).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, errors.Wrapf(err, "read %q", key)
	}
	return value, db.NullInt64Value(updatedAt), true, nil
}
