package database

import (
	"context"

	"github.com/trezcool/classroom/core/module"
)

type moduleRepository struct {
	db *DB
}

var _ module.Repository = (*moduleRepository)(nil) // interface compliance check

func NewModuleRepository(db *DB) module.Repository {
	return &moduleRepository{db: db}
}

func (repo *moduleRepository) QueryAllModules(ctx context.Context) ([]module.Module, error) {
	return repo.db.modules.All(ctx)
}

func (repo *moduleRepository) GetModuleByID(ctx context.Context, id string) (module.Module, error) {
	return repo.db.modules.GetByID(ctx, id)
}

func (repo *moduleRepository) CreateModule(ctx context.Context, m module.Module) (module.Module, error) {
	id, err := repo.db.modules.Create(ctx, m)
	if err != nil {
		return module.Module{}, err
	}
	return m.WithID(id), nil
}

func (repo *moduleRepository) UpdateModule(ctx context.Context, m module.Module) (module.Module, error) {
	if err := repo.db.modules.Update(ctx, m.ID, m); err != nil {
		return module.Module{}, err
	}
	return m, nil
}

func (repo *moduleRepository) DeleteModule(ctx context.Context, id string) error {
	return repo.db.modules.Delete(ctx, id)
}

func (repo *moduleRepository) SaveModules(ctx context.Context, mods []module.Module) error {
	return repo.db.modules.ReplaceAll(ctx, mods)
}
