package database

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/storage/kv"
)

var (
	ErrUnknownField = stderrors.New("unknown field")
	ErrIDExhausted  = stderrors.New("could not generate a unique id")
)

// Record is a flat persisted entity identified by an opaque string id.
// WithID returns a copy of the record carrying id.
type Record[T any] interface {
	GetID() string
	WithID(id string) T
}

// Table is the generic record store of one persisted table.
// Every operation loads the whole table, works in memory and writes the whole table back.
// Operations are serialized within the process; nothing protects against other processes
// sharing the same kv.Store (last writer wins).
type Table[T Record[T]] struct {
	name   string
	store  kv.Store
	logger core.Logger
	ids    *idGenerator
	mu     sync.Mutex
}

func NewTable[T Record[T]](name string, store kv.Store, logger core.Logger) *Table[T] {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Table[T]{
		name:   name,
		store:  store,
		logger: logger,
		ids:    newIDGenerator(),
	}
}

func (t *Table[T]) Name() string { return t.name }

// SetIDFunc replaces the random id source. Generated ids are still checked for collisions.
func (t *Table[T]) SetIDFunc(fn func() string) { t.ids.next = fn }

// load reads the table for a mutation: a corrupt table is an error.
func (t *Table[T]) load(ctx context.Context) ([]T, error) {
	recs := make([]T, 0)
	if _, err := kv.ReadTable(ctx, t.store, t.name, &recs); err != nil {
		return nil, err
	}
	if recs == nil { // stored as JSON null
		recs = make([]T, 0)
	}
	return recs, nil
}

// read reads the table for a query: a corrupt table is logged and reads as empty.
func (t *Table[T]) read(ctx context.Context) ([]T, error) {
	recs, err := t.load(ctx)
	if err != nil {
		if errors.Is(err, core.ErrCorruptState) {
			t.logger.Warn("treating corrupt table as empty", err, map[string]interface{}{"table": t.name})
			return make([]T, 0), nil
		}
		return nil, err
	}
	return recs, nil
}

func (t *Table[T]) save(ctx context.Context, recs []T) error {
	if recs == nil {
		recs = make([]T, 0)
	}
	return kv.WriteTable(ctx, t.store, t.name, recs)
}

func indexOf[T Record[T]](recs []T, id string) int {
	for i, rec := range recs {
		if rec.GetID() == id {
			return i
		}
	}
	return -1
}

func idSet[T Record[T]](recs []T) map[string]struct{} {
	ids := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		ids[rec.GetID()] = struct{}{}
	}
	return ids
}

// All returns every record, or an empty slice if the table was never written.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read(ctx)
}

// GroupBy groups all records by key, in first-occurrence order of the keys.
func (t *Table[T]) GroupBy(ctx context.Context, key func(T) string) ([]core.Group[T], error) {
	recs, err := t.All(ctx)
	if err != nil {
		return nil, err
	}
	return core.GroupBy(recs, key), nil
}

// GroupedBy groups all records by the value of their JSON field, in first-occurrence order.
func (t *Table[T]) GroupedBy(ctx context.Context, field string) ([]core.Group[T], error) {
	var zero T
	if _, ok := fieldValue(zero, field); !ok {
		return nil, errors.Wrapf(ErrUnknownField, "%s.%s", t.name, field)
	}
	return t.GroupBy(ctx, func(rec T) string {
		val, _ := fieldValue(rec, field)
		return formatValue(val)
	})
}

// GetByID returns the record with id, or core.ErrNotFound.
func (t *Table[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	recs, err := t.All(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf(recs, id); i >= 0 {
		return recs[i], nil
	}
	return zero, errors.Wrapf(core.ErrNotFound, "%s %s", t.name, id)
}

// GetByField returns the first record whose JSON field formats equal to value, or core.ErrNotFound.
func (t *Table[T]) GetByField(ctx context.Context, field string, value interface{}) (T, error) {
	var zero T
	if _, ok := fieldValue(zero, field); !ok {
		return zero, errors.Wrapf(ErrUnknownField, "%s.%s", t.name, field)
	}
	recs, err := t.All(ctx)
	if err != nil {
		return zero, err
	}
	want := formatValue(value)
	for _, rec := range recs {
		if val, _ := fieldValue(rec, field); formatValue(val) == want {
			return rec, nil
		}
	}
	return zero, errors.Wrapf(core.ErrNotFound, "%s with %s=%v", t.name, field, value)
}

// Create appends rec with a fresh id and returns the id.
func (t *Table[T]) Create(ctx context.Context, rec T) (string, error) {
	ids, err := t.BulkCreate(ctx, []T{rec})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// BulkCreate appends recs, each with a fresh id, in a single write.
func (t *Table[T]) BulkCreate(ctx context.Context, recs []T) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	items, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	taken := idSet(items)
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		id, err := t.ids.unique(taken)
		if err != nil {
			return nil, errors.Wrapf(err, "creating %s record", t.name)
		}
		taken[id] = struct{}{}
		ids = append(ids, id)
		items = append(items, rec.WithID(id))
	}
	if err = t.save(ctx, items); err != nil {
		return nil, err
	}
	return ids, nil
}

// Update replaces the whole record with id by rec (fields missing from rec are dropped).
// It returns core.ErrNotFound if no record has id.
func (t *Table[T]) Update(ctx context.Context, id string, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	items, err := t.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return errors.Wrapf(core.ErrNotFound, "%s %s", t.name, id)
	}
	items[i] = rec.WithID(id)
	return t.save(ctx, items)
}

// Patch applies fn to the stored record with id and saves the result; the id cannot be changed.
// It returns core.ErrNotFound if no record has id.
func (t *Table[T]) Patch(ctx context.Context, id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	items, err := t.load(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return zero, errors.Wrapf(core.ErrNotFound, "%s %s", t.name, id)
	}
	rec := items[i]
	if err = fn(&rec); err != nil {
		return zero, err
	}
	items[i] = rec.WithID(id)
	if err = t.save(ctx, items); err != nil {
		return zero, err
	}
	return items[i], nil
}

// Delete removes every record with id. Deleting a missing id is a no-op.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	items, err := t.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if it.GetID() != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return t.save(ctx, kept)
}

// DeleteAll persists an empty table. It also clears a corrupt table.
func (t *Table[T]) DeleteAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(ctx, nil)
}

// ReplaceAll persists recs as the whole table. Ids must already be set.
func (t *Table[T]) ReplaceAll(ctx context.Context, recs []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.load(ctx); err != nil {
		return err
	}
	return t.save(ctx, recs)
}
