package param

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	// registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS params (
	name  TEXT PRIMARY KEY,
	value REAL NOT NULL
)`

// SQLiteStore keeps parameters in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and if needed creates) the database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening parameter database %q", path)
	}
	// avoid transient locks when the CLI and the loop share the file
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "configuring parameter database"), db.Close())
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "creating parameter table"), db.Close())
	}
	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM params`)
	if err != nil {
		return nil, errors.Wrap(err, "loading parameters")
	}
	defer func() {
		//nolint:errcheck
		rows.Close()
	}()

	values := map[string]float64{}
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, errors.Wrap(err, "loading parameters")
		}
		values[name] = value
	}
	return values, rows.Err()
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, name string, value float64) error {
	if err := Check(name, value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO params (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value)
	return errors.Wrapf(err, "storing %s", name)
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
