// Package memkv is an in-memory kv.Store, used by tests and throwaway sessions.
package memkv

import (
	"context"
	"sync"

	"github.com/trezcool/classroom/storage/kv"
)

type Store struct {
	sync.RWMutex
	table map[string][]byte
}

var _ kv.Store = (*Store)(nil) // interface compliance check

func Open() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.Lock()
	defer s.Unlock()
	s.table[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.table, key)
	return nil
}

// Keys returns the stored keys, in no particular order.
func (s *Store) Keys() []string {
	s.RLock()
	defer s.RUnlock()
	keys := make([]string, 0, len(s.table))
	for k := range s.table {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Close() error { return nil }
