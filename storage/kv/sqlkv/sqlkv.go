// Package sqlkv is a kv.Store backed by a single `local_storage` SQL table (postgres or sqlite3).
package sqlkv

import (
	"context"
	"database/sql"
	"embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/classroom/storage/kv"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	gooseRunOrig = goose.Run
	gooseRunFunc = gooseRunOrig // mockable
)

type Store struct {
	db *sqlx.DB
}

var _ kv.Store = (*Store)(nil) // interface compliance check

// Open connects with driver (postgres or sqlite3) and migrates the schema up.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "pinging %s database", driver)
	}

	s := &Store{db: db}
	if err = s.Migrate("up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate runs a goose command (up, down, status, version, redo, reset...) against the embedded migrations.
func (s *Store) Migrate(command string, args ...string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(s.db.DriverName()); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := gooseRunFunc(command, s.db.DB, "migrations", args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var data string
	q := s.db.Rebind(`SELECT data FROM local_storage WHERE name = ?`)
	if err := s.db.GetContext(ctx, &data, q, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(data), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	q := s.db.Rebind(`
		INSERT INTO local_storage (name, data) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data`)
	_, err := s.db.ExecContext(ctx, q, key, string(value))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM local_storage WHERE name = ?`), key)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
