package page

import (
	"context"

	"github.com/trezcool/classroom/core"
)

type (
	Repository interface {
		QueryAllPages(ctx context.Context) ([]Page, error)
		GetPageByID(ctx context.Context, id string) (Page, error)
		// GroupPagesBy groups pages by the value of a JSON field, in first-occurrence order.
		GroupPagesBy(ctx context.Context, field string) ([]core.Group[Page], error)
		CreatePage(ctx context.Context, p Page) (Page, error)
		UpdatePage(ctx context.Context, p Page) (Page, error)
		DeletePage(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context) ([]Page, error) {
	return svc.repo.QueryAllPages(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Page, error) {
	return svc.repo.GetPageByID(ctx, id)
}

// GroupedByType groups pages by page type name, in first-occurrence order.
func (svc *Service) GroupedByType(ctx context.Context) ([]core.Group[Page], error) {
	return svc.repo.GroupPagesBy(ctx, "pageType")
}

func (svc *Service) Create(ctx context.Context, np NewPage) (Page, error) {
	if err := np.Validate(); err != nil {
		return Page{}, err
	}
	return svc.repo.CreatePage(ctx, Page{Title: np.Title, PageType: np.PageType})
}

func (svc *Service) Update(ctx context.Context, id string, up UpdatePage) (Page, error) {
	np := NewPage(up)
	if err := np.Validate(); err != nil {
		return Page{}, err
	}
	if _, err := svc.repo.GetPageByID(ctx, id); err != nil {
		return Page{}, err
	}
	return svc.repo.UpdatePage(ctx, Page{ID: id, Title: np.Title, PageType: np.PageType})
}

// Delete removes the Page. Modules referencing it keep the dangling id.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeletePage(ctx, id)
}

// Resolve maps ids to pages, in order, skipping ids with no matching Page.
func Resolve(ids []string, pages []Page) []Page {
	byID := make(map[string]Page, len(pages))
	for _, p := range pages {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}
	res := make([]Page, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			res = append(res, p)
		}
	}
	return res
}
