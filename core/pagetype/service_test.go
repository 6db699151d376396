package pagetype_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/pagetype"
	"github.com/trezcool/classroom/storage/database"
	"github.com/trezcool/classroom/tests"
)

func setup(t *testing.T) (*pagetype.Service, pagetype.Repository) {
	repo := database.NewPageTypeRepository(testutil.NewDB(t))
	return pagetype.NewService(repo), repo
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)

	_, err := repo.BulkCreatePageTypes(ctx, []pagetype.PageType{
		{Name: "Quiz"},
		{Name: pagetype.Assignment},
		{Name: "Quiz"},
	})
	require.NoError(t, err)

	pts, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(pts))
	for _, pt := range pts {
		names = append(names, pt.Name)
	}
	assert.Equal(t, []string{"Quiz", pagetype.Assignment, pagetype.HomePage, pagetype.GenericPage, pagetype.InClassExercise}, names)

	stored, err := repo.QueryAllPageTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 6, "duplicates are hidden, not deleted")

	// required types are only created once
	_, err = svc.List(ctx)
	require.NoError(t, err)
	stored, err = repo.QueryAllPageTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 6)

	sorted, err := svc.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assignment", "GenericPage", "HomePage", "In-Class Exercise", "Quiz"}, sorted)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	quiz, err := svc.Create(ctx, pagetype.NewPageType{Name: " Quiz "})
	require.NoError(t, err)
	assert.Equal(t, "Quiz", quiz.Name)

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "blank", in: "  "},
		{name: "duplicate", in: "quiz", wantErr: pagetype.ErrNameExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, pagetype.NewPageType{Name: tt.in})
			assert.True(t, core.IsValidationError(err))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestService_RenameDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	required, err := svc.EnsureRequired(ctx)
	require.NoError(t, err)
	require.Len(t, required, len(pagetype.RequiredTypes))
	quiz, err := svc.Create(ctx, pagetype.NewPageType{Name: "Quiz"})
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, quiz.ID, pagetype.NewPageType{Name: "Exam"})
	require.NoError(t, err)
	assert.Equal(t, pagetype.PageType{ID: quiz.ID, Name: "Exam"}, renamed)

	_, err = svc.Rename(ctx, quiz.ID, pagetype.NewPageType{Name: "exam"})
	assert.NoError(t, err, "a record does not collide with itself")

	_, err = svc.Rename(ctx, quiz.ID, pagetype.NewPageType{Name: "homepage"})
	assert.True(t, errors.Is(err, pagetype.ErrNameExists))

	_, err = svc.Rename(ctx, required[0].ID, pagetype.NewPageType{Name: "Landing"})
	assert.Equal(t, pagetype.ErrRequiredType, err)
	assert.Equal(t, pagetype.ErrRequiredType, svc.Delete(ctx, required[0].ID))

	_, err = svc.Rename(ctx, "missing", pagetype.NewPageType{Name: "X"})
	assert.True(t, errors.Is(err, core.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, quiz.ID))
	require.NoError(t, svc.Delete(ctx, quiz.ID))
	_, err = svc.Get(ctx, quiz.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestIsRequired(t *testing.T) {
	assert.True(t, pagetype.IsRequired("in-class exercise"))
	assert.True(t, pagetype.IsRequired(" HomePage "))
	assert.False(t, pagetype.IsRequired("Quiz"))
}
