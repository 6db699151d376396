package pagetype

import (
	"context"
	"errors"
	"sort"

	"github.com/trezcool/classroom/core"
)

var (
	// errors
	ErrNameExists   = errors.New("a page type with this name already exists")
	ErrRequiredType = errors.New("required page types cannot be modified")
)

type (
	Repository interface {
		QueryAllPageTypes(ctx context.Context) ([]PageType, error)
		GetPageTypeByID(ctx context.Context, id string) (PageType, error)
		CreatePageType(ctx context.Context, pt PageType) (PageType, error)
		BulkCreatePageTypes(ctx context.Context, pts []PageType) ([]PageType, error)
		UpdatePageType(ctx context.Context, pt PageType) (PageType, error)
		DeletePageType(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the page types with duplicate names removed (the first record wins).
// Missing required types are created first.
func (svc *Service) List(ctx context.Context) ([]PageType, error) {
	if _, err := svc.EnsureRequired(ctx); err != nil {
		return nil, err
	}
	pts, err := svc.repo.QueryAllPageTypes(ctx)
	if err != nil {
		return nil, err
	}
	return dedupe(pts), nil
}

// EnsureRequired creates the required page types missing from storage and returns them.
func (svc *Service) EnsureRequired(ctx context.Context) ([]PageType, error) {
	pts, err := svc.repo.QueryAllPageTypes(ctx)
	if err != nil {
		return nil, err
	}
	missing := make([]PageType, 0)
	for _, req := range RequiredTypes {
		if !hasName(pts, req) {
			missing = append(missing, PageType{Name: req})
		}
	}
	if len(missing) == 0 {
		return missing, nil
	}
	return svc.repo.BulkCreatePageTypes(ctx, missing)
}

// Names returns the unique page type names, sorted.
func (svc *Service) Names(ctx context.Context) ([]string, error) {
	pts, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(pts))
	for _, pt := range pts {
		names = append(names, pt.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (svc *Service) Get(ctx context.Context, id string) (PageType, error) {
	return svc.repo.GetPageTypeByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, npt NewPageType) (PageType, error) {
	if err := svc.validate(ctx, &npt, ""); err != nil {
		return PageType{}, err
	}
	return svc.repo.CreatePageType(ctx, PageType{Name: npt.Name})
}

// Rename changes the name of a non-required page type.
func (svc *Service) Rename(ctx context.Context, id string, npt NewPageType) (PageType, error) {
	pt, err := svc.repo.GetPageTypeByID(ctx, id)
	if err != nil {
		return PageType{}, err
	}
	if err = svc.validate(ctx, &npt, id); err != nil {
		return PageType{}, err
	}
	if IsRequired(pt.Name) {
		return PageType{}, ErrRequiredType
	}
	pt.Name = npt.Name
	return svc.repo.UpdatePageType(ctx, pt)
}

// Delete removes a non-required page type. Pages using its name are left as they are.
func (svc *Service) Delete(ctx context.Context, id string) error {
	pt, err := svc.repo.GetPageTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return err
	}
	if IsRequired(pt.Name) {
		return ErrRequiredType
	}
	return svc.repo.DeletePageType(ctx, id)
}

// validate checks npt for blank then duplicate names. Records with id exceptID are ignored
// by the duplicate check.
func (svc *Service) validate(ctx context.Context, npt *NewPageType, exceptID string) error {
	if err := npt.Validate(); err != nil {
		return err
	}
	pts, err := svc.repo.QueryAllPageTypes(ctx)
	if err != nil {
		return err
	}
	for _, pt := range pts {
		if pt.ID != exceptID && core.EqualFold(pt.Name, npt.Name) {
			return core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
		}
	}
	return nil
}

func dedupe(pts []PageType) []PageType {
	seen := make(map[string]bool, len(pts))
	res := make([]PageType, 0, len(pts))
	for _, pt := range pts {
		if seen[pt.Name] {
			continue
		}
		seen[pt.Name] = true
		res = append(res, pt)
	}
	return res
}

func hasName(pts []PageType, name string) bool {
	for _, pt := range pts {
		if pt.Name == name {
			return true
		}
	}
	return false
}
