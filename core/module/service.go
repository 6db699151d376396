package module

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/page"
	"github.com/trezcool/classroom/core/user"
)

type (
	Repository interface {
		QueryAllModules(ctx context.Context) ([]Module, error)
		GetModuleByID(ctx context.Context, id string) (Module, error)
		CreateModule(ctx context.Context, m Module) (Module, error)
		// UpdateModule replaces the whole stored Module.
		UpdateModule(ctx context.Context, m Module) (Module, error)
		DeleteModule(ctx context.Context, id string) error
		// SaveModules persists mods, in order, as the whole modules table.
		SaveModules(ctx context.Context, mods []Module) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SortByOrder sorts mods by their Order field, keeping the stored order for ties.
func SortByOrder(mods []Module) {
	sort.SliceStable(mods, func(i, j int) bool { return mods[i].Order < mods[j].Order })
}

// List returns every Module sorted by Order.
func (svc *Service) List(ctx context.Context) ([]Module, error) {
	mods, err := svc.repo.QueryAllModules(ctx)
	if err != nil {
		return nil, err
	}
	SortByOrder(mods)
	return mods, nil
}

// ListVisible returns the modules viewer may see: everything for teachers, published modules otherwise.
func (svc *Service) ListVisible(ctx context.Context, viewer user.User) ([]Module, error) {
	mods, err := svc.List(ctx)
	if err != nil || viewer.IsTeacher() {
		return mods, err
	}
	visible := make([]Module, 0, len(mods))
	for _, m := range mods {
		if m.IsPublished() {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Module, error) {
	return svc.repo.GetModuleByID(ctx, id)
}

// Create adds a Module with no pages, ranked last.
func (svc *Service) Create(ctx context.Context, nm NewModule) (Module, error) {
	if err := nm.Validate(); err != nil {
		return Module{}, err
	}
	mods, err := svc.repo.QueryAllModules(ctx)
	if err != nil {
		return Module{}, err
	}
	return svc.repo.CreateModule(ctx, Module{
		Title:  nm.Title,
		Status: nm.Status,
		Pages:  []string{},
		Order:  len(mods),
	})
}

func (svc *Service) Update(ctx context.Context, id string, um UpdateModule) (Module, error) {
	nm := NewModule(um)
	if err := nm.Validate(); err != nil {
		return Module{}, err
	}
	m, err := svc.repo.GetModuleByID(ctx, id)
	if err != nil {
		return Module{}, err
	}
	m.Title = nm.Title
	m.Status = nm.Status
	return svc.repo.UpdateModule(ctx, m)
}

// Delete removes the Module. The remaining modules are not renumbered until the next reorder.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteModule(ctx, id)
}

// AddPage appends pageID to the module's pages.
func (svc *Service) AddPage(ctx context.Context, moduleID, pageID string) (Module, error) {
	if core.IsBlank(pageID) {
		return Module{}, core.NewValidationError(nil, core.FieldError{Field: "pageId", Error: "this field is required"})
	}
	m, err := svc.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return Module{}, err
	}
	m.Pages = append(m.Pages, pageID)
	return svc.repo.UpdateModule(ctx, m)
}

// RemovePage removes every occurrence of pageID from the module's pages.
func (svc *Service) RemovePage(ctx context.Context, moduleID, pageID string) (Module, error) {
	m, err := svc.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return Module{}, err
	}
	pages := make([]string, 0, len(m.Pages))
	for _, id := range m.Pages {
		if id != pageID {
			pages = append(pages, id)
		}
	}
	m.Pages = pages
	return svc.repo.UpdateModule(ctx, m)
}

// Reorder moves the module one rank in dir and renumbers the Order of every module to its new position.
// Moving the first module up or the last one down changes nothing.
func (svc *Service) Reorder(ctx context.Context, moduleID string, dir core.Direction) ([]Module, error) {
	mods, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, m := range mods {
		if m.ID == moduleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrapf(core.ErrNotFound, "module %s", moduleID)
	}

	reordered, moved := core.Reorder(mods, idx, dir)
	if !moved {
		return mods, nil
	}
	for i := range reordered {
		reordered[i].Order = i
	}
	if err = svc.repo.SaveModules(ctx, reordered); err != nil {
		return nil, err
	}
	return reordered, nil
}

// ReorderPage moves the first occurrence of pageID one position in dir within the module's pages.
// Only that module is saved.
func (svc *Service) ReorderPage(ctx context.Context, moduleID, pageID string, dir core.Direction) (Module, error) {
	m, err := svc.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return Module{}, err
	}
	idx := -1
	for i, id := range m.Pages {
		if id == pageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Module{}, errors.Wrapf(core.ErrNotFound, "page %s in module %s", pageID, moduleID)
	}

	pages, moved := core.Reorder(m.Pages, idx, dir)
	if !moved {
		return m, nil
	}
	m.Pages = pages
	return svc.repo.UpdateModule(ctx, m)
}

// Pages resolves the module's page ids against pages, dropping dangling references.
func Pages(m Module, pages []page.Page) []page.Page {
	return page.Resolve(m.Pages, pages)
}
