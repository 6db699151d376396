package boltkv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classroom/storage/kv/kvtest"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "data", "test.db"), "")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	kvtest.Run(t, s)
}

func TestStore_persistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, "custom")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "user", []byte(`{"id":"1"}`)))
	require.NoError(t, s.Close())

	s, err = Open(path, "custom")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))
}
