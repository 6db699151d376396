// Package kv is the persistence substrate: a flat namespace of string keys holding raw values.
// Tables are stored as JSON arrays under a key equal to the table name.
package kv

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core"
)

var ErrKeyNotFound = stderrors.New("key not found")

// Store is a key-value namespace, the equivalent of the browser's localStorage.
type Store interface {
	// Get returns ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op when key is absent.
	Delete(ctx context.Context, key string) error
	Close() error
}

// ReadTable decodes the table stored under name into out (a pointer to a slice).
// found is false when the table has never been written.
// A value that is not valid JSON yields an error wrapping core.ErrCorruptState.
func ReadTable(ctx context.Context, s Store, name string, out interface{}) (found bool, err error) {
	data, err := s.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading table %s", name)
	}
	if err = json.Unmarshal(data, out); err != nil {
		return true, errors.Wrapf(core.ErrCorruptState, "decoding table %s: %v", name, err)
	}
	return true, nil
}

// WriteTable encodes records (a slice) as JSON and stores it under name.
func WriteTable(ctx context.Context, s Store, name string, records interface{}) error {
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding table %s", name)
	}
	if err = s.Set(ctx, name, data); err != nil {
		return errors.Wrapf(err, "writing table %s", name)
	}
	return nil
}
