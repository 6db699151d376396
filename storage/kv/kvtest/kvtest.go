// Package kvtest holds the behaviour every kv.Store engine must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/storage/kv"
)

type record struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Pages []string `json:"pages,omitempty"`
	Order int      `json:"order"`
}

// Run exercises s. s must be empty.
func Run(t *testing.T, s kv.Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		assert.NoError(t, s.Delete(ctx, "nope"))
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "darkMode", []byte("true")))
		val, err := s.Get(ctx, "darkMode")
		require.NoError(t, err)
		assert.Equal(t, "true", string(val))

		require.NoError(t, s.Set(ctx, "darkMode", []byte("false")))
		val, err = s.Get(ctx, "darkMode")
		require.NoError(t, err)
		assert.Equal(t, "false", string(val))

		require.NoError(t, s.Delete(ctx, "darkMode"))
		_, err = s.Get(ctx, "darkMode")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("table round trip", func(t *testing.T) {
		var empty []record
		found, err := kv.ReadTable(ctx, s, "modules", &empty)
		require.NoError(t, err)
		assert.False(t, found)

		want := []record{
			{ID: "1", Title: "Week 1", Pages: []string{"a", "b", "a"}, Order: 0},
			{ID: "2", Title: "Week 2", Order: 1},
		}
		require.NoError(t, kv.WriteTable(ctx, s, "modules", want))

		var got []record
		found, err = kv.ReadTable(ctx, s, "modules", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("corrupt table", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "pages", []byte("{not json")))

		var got []record
		found, err := kv.ReadTable(ctx, s, "pages", &got)
		assert.True(t, found)
		assert.ErrorIs(t, err, core.ErrCorruptState)
	})
}
