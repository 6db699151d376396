package module_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/module"
	"github.com/trezcool/classroom/core/page"
	"github.com/trezcool/classroom/core/user"
	"github.com/trezcool/classroom/storage/database"
	"github.com/trezcool/classroom/tests"
)

func setup(t *testing.T) (*module.Service, module.Repository) {
	repo := database.NewModuleRepository(testutil.NewDB(t))
	return module.NewService(repo), repo
}

func ids(mods []module.Module) []string {
	res := make([]string, 0, len(mods))
	for _, m := range mods {
		res = append(res, m.ID)
	}
	return res
}

func orders(mods []module.Module) []int {
	res := make([]int, 0, len(mods))
	for _, m := range mods {
		res = append(res, m.Order)
	}
	return res
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	m1, err := svc.Create(ctx, module.NewModule{Title: "Week 1"})
	require.NoError(t, err)
	assert.Equal(t, module.Unpublished, m1.Status)
	assert.Equal(t, 0, m1.Order)
	assert.NotNil(t, m1.Pages)
	assert.Empty(t, m1.Pages)

	m2, err := svc.Create(ctx, module.NewModule{Title: "Week 2", Status: module.Published})
	require.NoError(t, err)
	assert.Equal(t, 1, m2.Order)
	assert.True(t, m2.IsPublished())

	_, err = svc.Create(ctx, module.NewModule{Title: " "})
	assert.True(t, core.IsValidationError(err))
	_, err = svc.Create(ctx, module.NewModule{Title: "Week 3", Status: "draft"})
	assert.True(t, core.IsValidationError(err))
}

func TestService_Reorder(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	mods := testutil.CreateModules(t, repo, module.Published, "A", "B", "C")

	got, err := svc.Reorder(ctx, mods[1].ID, core.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{mods[1].ID, mods[0].ID, mods[2].ID}, ids(got))
	assert.Equal(t, []int{0, 1, 2}, orders(got))

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(got), ids(stored))
	assert.Equal(t, []int{0, 1, 2}, orders(stored))

	t.Run("boundaries", func(t *testing.T) {
		got, err := svc.Reorder(ctx, mods[1].ID, core.Up) // now first
		require.NoError(t, err)
		assert.Equal(t, ids(stored), ids(got))

		got, err = svc.Reorder(ctx, mods[2].ID, core.Down)
		require.NoError(t, err)
		assert.Equal(t, ids(stored), ids(got))
	})

	t.Run("renumbers gaps", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, mods[0].ID)) // orders now [0, 2]
		got, err := svc.Reorder(ctx, mods[2].ID, core.Up)
		require.NoError(t, err)
		assert.Equal(t, []string{mods[2].ID, mods[1].ID}, ids(got))
		assert.Equal(t, []int{0, 1}, orders(got))
	})

	_, err = svc.Reorder(ctx, "missing", core.Down)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestService_Pages(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	m := testutil.CreateModules(t, repo, module.Published, "A", "B")[0]
	other, err := svc.Get(ctx, testutil.CreateModules(t, repo, module.Published, "C")[0].ID)
	require.NoError(t, err)

	for _, id := range []string{"p1", "p2", "p3", "p1"} {
		m, err = svc.AddPage(ctx, m.ID, id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p1"}, m.Pages)

	_, err = svc.AddPage(ctx, m.ID, " ")
	assert.True(t, core.IsValidationError(err))

	m, err = svc.ReorderPage(ctx, m.ID, "p1", core.Down)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1", "p3", "p1"}, m.Pages, "only the first occurrence moves")

	m, err = svc.ReorderPage(ctx, m.ID, "p2", core.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1", "p3", "p1"}, m.Pages)

	_, err = svc.ReorderPage(ctx, m.ID, "p9", core.Up)
	assert.True(t, errors.Is(err, core.ErrNotFound))

	stored, err := svc.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other, stored, "other modules are untouched")

	m, err = svc.RemovePage(ctx, m.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, m.Pages)

	pages := []page.Page{{ID: "p3", Title: "Three"}}
	assert.Equal(t, pages, module.Pages(m, pages), "dangling ids are skipped")
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	m := testutil.CreateModules(t, repo, module.Unpublished, "A", "B")[1]
	m, err := svc.AddPage(ctx, m.ID, "p1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, m.ID, module.UpdateModule{Title: "Week B", Status: module.Published})
	require.NoError(t, err)
	assert.Equal(t, module.Module{ID: m.ID, Title: "Week B", Status: module.Published, Pages: []string{"p1"}, Order: 1}, updated)

	_, err = svc.Update(ctx, "missing", module.UpdateModule{Title: "x"})
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestService_ListVisible(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	testutil.CreateModules(t, repo, module.Published, "A")
	hidden, err := svc.Create(ctx, module.NewModule{Title: "B"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		viewer user.User
		want   int
	}{
		{name: "teacher", viewer: user.User{UserType: user.Teacher}, want: 2},
		{name: "student", viewer: user.User{UserType: user.Student}, want: 1},
		{name: "anonymous", viewer: user.User{}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListVisible(ctx, tt.viewer)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			if tt.want == 1 {
				assert.NotEqual(t, hidden.ID, got[0].ID)
			}
		})
	}
}
