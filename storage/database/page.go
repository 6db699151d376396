package database

import (
	"context"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/page"
)

type pageRepository struct {
	db *DB
}

var _ page.Repository = (*pageRepository)(nil) // interface compliance check

func NewPageRepository(db *DB) page.Repository {
	return &pageRepository{db: db}
}

func (repo *pageRepository) QueryAllPages(ctx context.Context) ([]page.Page, error) {
	return repo.db.pages.All(ctx)
}

func (repo *pageRepository) GetPageByID(ctx context.Context, id string) (page.Page, error) {
	return repo.db.pages.GetByID(ctx, id)
}

func (repo *pageRepository) GroupPagesBy(ctx context.Context, field string) ([]core.Group[page.Page], error) {
	return repo.db.pages.GroupedBy(ctx, field)
}

func (repo *pageRepository) CreatePage(ctx context.Context, p page.Page) (page.Page, error) {
	id, err := repo.db.pages.Create(ctx, p)
	if err != nil {
		return page.Page{}, err
	}
	return p.WithID(id), nil
}

func (repo *pageRepository) UpdatePage(ctx context.Context, p page.Page) (page.Page, error) {
	if err := repo.db.pages.Update(ctx, p.ID, p); err != nil {
		return page.Page{}, err
	}
	return p, nil
}

func (repo *pageRepository) DeletePage(ctx context.Context, id string) error {
	return repo.db.pages.Delete(ctx, id)
}
