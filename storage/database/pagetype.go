package database

import (
	"context"

	"github.com/trezcool/classroom/core/pagetype"
)

type pageTypeRepository struct {
	db *DB
}

var _ pagetype.Repository = (*pageTypeRepository)(nil) // interface compliance check

func NewPageTypeRepository(db *DB) pagetype.Repository {
	return &pageTypeRepository{db: db}
}

func (repo *pageTypeRepository) QueryAllPageTypes(ctx context.Context) ([]pagetype.PageType, error) {
	return repo.db.pageTypes.All(ctx)
}

func (repo *pageTypeRepository) GetPageTypeByID(ctx context.Context, id string) (pagetype.PageType, error) {
	return repo.db.pageTypes.GetByID(ctx, id)
}

func (repo *pageTypeRepository) CreatePageType(ctx context.Context, pt pagetype.PageType) (pagetype.PageType, error) {
	id, err := repo.db.pageTypes.Create(ctx, pt)
	if err != nil {
		return pagetype.PageType{}, err
	}
	return pt.WithID(id), nil
}

func (repo *pageTypeRepository) BulkCreatePageTypes(ctx context.Context, pts []pagetype.PageType) ([]pagetype.PageType, error) {
	ids, err := repo.db.pageTypes.BulkCreate(ctx, pts)
	if err != nil {
		return nil, err
	}
	created := make([]pagetype.PageType, 0, len(pts))
	for i, pt := range pts {
		created = append(created, pt.WithID(ids[i]))
	}
	return created, nil
}

func (repo *pageTypeRepository) UpdatePageType(ctx context.Context, pt pagetype.PageType) (pagetype.PageType, error) {
	if err := repo.db.pageTypes.Update(ctx, pt.ID, pt); err != nil {
		return pagetype.PageType{}, err
	}
	return pt, nil
}

func (repo *pageTypeRepository) DeletePageType(ctx context.Context, id string) error {
	return repo.db.pageTypes.Delete(ctx, id)
}
