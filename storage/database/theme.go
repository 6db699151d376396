package database

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core/theme"
	"github.com/trezcool/classroom/storage/kv"
)

type themeRepository struct {
	db *DB
}

var _ theme.Repository = (*themeRepository)(nil) // interface compliance check

func NewThemeRepository(db *DB) theme.Repository {
	return &themeRepository{db: db}
}

// DarkMode reads DarkModeKey. Anything but "true" is false.
func (repo *themeRepository) DarkMode(ctx context.Context) (bool, error) {
	data, err := repo.db.store.Get(ctx, DarkModeKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "reading dark mode")
	}
	return string(data) == "true", nil
}

func (repo *themeRepository) SetDarkMode(ctx context.Context, on bool) error {
	return errors.Wrap(repo.db.store.Set(ctx, DarkModeKey, []byte(strconv.FormatBool(on))), "writing dark mode")
}
