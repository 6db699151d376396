package database

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/storage/kv/memkv"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind,omitempty"`
	Rank  int    `json:"rank"`
}

func (it item) GetID() string { return it.ID }

func (it item) WithID(id string) item {
	it.ID = id
	return it
}

type warnLogger struct {
	core.Logger
	warnings []string
}

func (l *warnLogger) Warn(msg string, _ ...interface{}) { l.warnings = append(l.warnings, msg) }

func newItemTable(t *testing.T) (*Table[item], *memkv.Store) {
	t.Helper()
	store := memkv.Open()
	return NewTable[item]("items", store, nil), store
}

func TestTable_All(t *testing.T) {
	ctx := context.Background()
	tbl, store := newItemTable(t)

	items, err := tbl.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items, "never written table reads as empty")

	require.NoError(t, store.Set(ctx, "items", []byte("null")))
	items, err = tbl.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTable_CreateGetByID(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	id, err := tbl.Create(ctx, item{Title: "Intro", Kind: "GenericPage", Rank: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := tbl.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, item{ID: id, Title: "Intro", Kind: "GenericPage", Rank: 3}, got)

	_, err = tbl.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestTable_BulkCreate(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	ids, err := tbl.BulkCreate(ctx, []item{{Title: "a"}, {Title: "b"}, {Title: "c"}})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])

	items, err := tbl.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, ids[i], it.ID)
	}
}

func TestTable_Update(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	ids, err := tbl.BulkCreate(ctx, []item{{Title: "a", Kind: "Assignment", Rank: 1}, {Title: "b"}})
	require.NoError(t, err)

	t.Run("full replace", func(t *testing.T) {
		require.NoError(t, tbl.Update(ctx, ids[0], item{ID: "ignored", Title: "a2"}))

		got, err := tbl.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, item{ID: ids[0], Title: "a2"}, got, "omitted fields are dropped")

		items, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, ids[0], items[0].ID, "position is kept")
	})

	t.Run("missing id", func(t *testing.T) {
		err := tbl.Update(ctx, "missing", item{Title: "x"})
		assert.True(t, errors.Is(err, core.ErrNotFound))

		items, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestTable_Patch(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	id, err := tbl.Create(ctx, item{Title: "a", Kind: "Assignment", Rank: 1})
	require.NoError(t, err)

	got, err := tbl.Patch(ctx, id, func(it *item) error {
		it.ID = "hijacked"
		it.Rank = 7
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, item{ID: id, Title: "a", Kind: "Assignment", Rank: 7}, got)

	errBoom := errors.New("boom")
	_, err = tbl.Patch(ctx, id, func(*item) error { return errBoom })
	assert.Equal(t, errBoom, err)

	_, err = tbl.Patch(ctx, "missing", func(*item) error { return nil })
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestTable_Delete(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	ids, err := tbl.BulkCreate(ctx, []item{{Title: "a"}, {Title: "b"}})
	require.NoError(t, err)

	require.NoError(t, tbl.Delete(ctx, "missing"))
	items, err := tbl.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2, "deleting a missing id is a no-op")

	require.NoError(t, tbl.Delete(ctx, ids[0]))
	_, err = tbl.GetByID(ctx, ids[0])
	assert.True(t, errors.Is(err, core.ErrNotFound))

	require.NoError(t, tbl.DeleteAll(ctx))
	items, err = tbl.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTable_DeleteDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	tbl, store := newItemTable(t)
	require.NoError(t, store.Set(ctx, "items", []byte(`[{"id":"7","title":"a"},{"id":"7","title":"b"},{"id":"8","title":"c"}]`)))

	require.NoError(t, tbl.Delete(ctx, "7"))

	_, err := tbl.GetByID(ctx, "7")
	assert.True(t, errors.Is(err, core.ErrNotFound))
	items, err := tbl.All(ctx)
	require.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "8", items[0].ID)
	}
}

func TestTable_GroupedBy(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	_, err := tbl.BulkCreate(ctx, []item{
		{Title: "p1", Kind: "Assignment"},
		{Title: "p2", Kind: "GenericPage"},
		{Title: "p3", Kind: "Assignment"},
	})
	require.NoError(t, err)

	groups, err := tbl.GroupedBy(ctx, "kind")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assignment", "GenericPage"}, core.GroupKeys(groups))
	assert.Len(t, groups[0].Records, 2)
	assert.Len(t, groups[1].Records, 1)

	_, err = tbl.GroupedBy(ctx, "color")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestTable_GetByField(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	_, err := tbl.BulkCreate(ctx, []item{{Title: "a", Rank: 1}, {Title: "b", Rank: 2}, {Title: "c", Rank: 2}})
	require.NoError(t, err)

	got, err := tbl.GetByField(ctx, "rank", 2)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title, "first match wins")

	got, err = tbl.GetByField(ctx, "title", "c")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rank)

	_, err = tbl.GetByField(ctx, "title", "z")
	assert.True(t, errors.Is(err, core.ErrNotFound))

	_, err = tbl.GetByField(ctx, "nope", "z")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestTable_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := memkv.Open()
	logger := &warnLogger{Logger: core.NopLogger()}
	tbl := NewTable[item]("items", store, logger)

	require.NoError(t, store.Set(ctx, "items", []byte("{not json")))

	items, err := tbl.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, logger.warnings, 1)

	_, err = tbl.Create(ctx, item{Title: "a"})
	assert.True(t, errors.Is(err, core.ErrCorruptState))
	err = tbl.Delete(ctx, "x")
	assert.True(t, errors.Is(err, core.ErrCorruptState))

	raw, err := store.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw), "corrupt data is not overwritten")

	require.NoError(t, tbl.DeleteAll(ctx))
	_, err = tbl.Create(ctx, item{Title: "a"})
	assert.NoError(t, err)
}

func TestTable_IDCollision(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	seq := []string{"1", "1", "1", "2"}
	n := 0
	tbl.SetIDFunc(func() string {
		id := seq[n%len(seq)]
		n++
		return id
	})

	first, err := tbl.Create(ctx, item{Title: "a"})
	require.NoError(t, err)
	assert.Equal(t, "1", first)

	second, err := tbl.Create(ctx, item{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, "2", second, "colliding ids are regenerated")

	tbl.SetIDFunc(func() string { return "1" })
	_, err = tbl.Create(ctx, item{Title: "c"})
	assert.True(t, errors.Is(err, ErrIDExhausted))

	items, err := tbl.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestTable_BulkCreateUniqueWithinBatch(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	n := 0
	tbl.SetIDFunc(func() string {
		n++
		return strconv.Itoa(n / 2) // 0, 1, 1, 2, 2...
	})

	ids, err := tbl.BulkCreate(ctx, []item{{Title: "a"}, {Title: "b"}, {Title: "c"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ids)
}

func TestTable_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	tbl, _ := newItemTable(t)

	ids, err := tbl.BulkCreate(ctx, []item{{Title: "a"}, {Title: "b"}})
	require.NoError(t, err)

	require.NoError(t, tbl.ReplaceAll(ctx, []item{{ID: ids[1], Title: "b", Rank: 0}, {ID: ids[0], Title: "a", Rank: 1}}))
	items, err := tbl.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[0]}, []string{items[0].ID, items[1].ID})
}
