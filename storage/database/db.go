package database

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/announcement"
	"github.com/trezcool/classroom/core/module"
	"github.com/trezcool/classroom/core/page"
	"github.com/trezcool/classroom/core/pagetype"
	"github.com/trezcool/classroom/core/user"
	"github.com/trezcool/classroom/storage/kv"
	"github.com/trezcool/classroom/storage/kv/boltkv"
	"github.com/trezcool/classroom/storage/kv/memkv"
	"github.com/trezcool/classroom/storage/kv/rediskv"
	"github.com/trezcool/classroom/storage/kv/sqlkv"
)

// persisted keys
const (
	UsersTable         = "users"
	AnnouncementsTable = "announcements"
	ModulesTable       = "modules"
	PagesTable         = "pages"
	PageTypesTable     = "pageTypes"

	DarkModeKey = "darkMode"
	SessionKey  = "user"
)

// Tables lists every table name, in the order Reset clears them.
var Tables = []string{UsersTable, AnnouncementsTable, ModulesTable, PagesTable, PageTypesTable}

var ErrUnknownTable = errors.New("unknown table")

// DB holds the typed tables of the application on top of one kv.Store.
type DB struct {
	store  kv.Store
	logger core.Logger

	users         *Table[user.User]
	announcements *Table[announcement.Announcement]
	modules       *Table[module.Module]
	pages         *Table[page.Page]
	pageTypes     *Table[pagetype.PageType]
}

func New(store kv.Store, logger core.Logger) *DB {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &DB{
		store:         store,
		logger:        logger,
		users:         NewTable[user.User](UsersTable, store, logger),
		announcements: NewTable[announcement.Announcement](AnnouncementsTable, store, logger),
		modules:       NewTable[module.Module](ModulesTable, store, logger),
		pages:         NewTable[page.Page](PagesTable, store, logger),
		pageTypes:     NewTable[pagetype.PageType](PageTypesTable, store, logger),
	}
}

// Open opens the configured kv.Store and wraps it in a DB.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (*DB, error) {
	store, err := OpenStore(ctx, conf.Storage)
	if err != nil {
		return nil, err
	}
	return New(store, logger), nil
}

// OpenStore returns the kv.Store of the configured engine.
// Network engines are retried while the server comes up.
func OpenStore(ctx context.Context, conf core.StorageConfig) (kv.Store, error) {
	switch conf.Engine {
	case "memory":
		return memkv.Open(), nil
	case "bolt", "":
		return boltkv.Open(conf.Path, conf.Bucket)
	case "redis":
		var store kv.Store
		err := retry(ctx, func() (err error) {
			store, err = rediskv.Open(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB, conf.RedisPrefix)
			return err
		})
		return store, err
	case "postgres", "sqlite3":
		var store kv.Store
		err := retry(ctx, func() (err error) {
			store, err = sqlkv.Open(ctx, conf.Engine, conf.DSN)
			return err
		})
		return store, err
	default:
		return nil, errors.Errorf("unsupported storage engine %q", conf.Engine)
	}
}

var maxOpenAttempts = 10

// retry calls fn until it succeeds, waiting 100ms longer between each attempt.
func retry(ctx context.Context, fn func() error) error {
	var err error
	for attempts := 1; attempts <= maxOpenAttempts; attempts++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempts == maxOpenAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), err.Error())
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "storage connection timeout")
}

func (db *DB) Store() kv.Store { return db.store }

func (db *DB) Close() error { return db.store.Close() }

// Reset empties the named tables, or every table if none is given.
// The session and theme keys are left alone.
func (db *DB) Reset(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		tables = Tables
	}
	for _, name := range tables {
		var err error
		switch name {
		case UsersTable:
			err = db.users.DeleteAll(ctx)
		case AnnouncementsTable:
			err = db.announcements.DeleteAll(ctx)
		case ModulesTable:
			err = db.modules.DeleteAll(ctx)
		case PagesTable:
			err = db.pages.DeleteAll(ctx)
		case PageTypesTable:
			err = db.pageTypes.DeleteAll(ctx)
		default:
			err = errors.Wrap(ErrUnknownTable, name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
