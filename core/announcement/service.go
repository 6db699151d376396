package announcement

import (
	"context"
	"time"
)

var nowFunc = time.Now // mockable

type (
	Repository interface {
		QueryAllAnnouncements(ctx context.Context) ([]Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		CreateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context) ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	if err := na.Validate(); err != nil {
		return Announcement{}, err
	}
	return svc.repo.CreateAnnouncement(ctx, Announcement{
		Title:   na.Title,
		Content: na.Content,
		Date:    nowFunc().UTC().Format(DateLayout),
	})
}

// Update changes the title and content; the date is kept.
func (svc *Service) Update(ctx context.Context, id string, ua UpdateAnnouncement) (Announcement, error) {
	na := NewAnnouncement(ua)
	if err := na.Validate(); err != nil {
		return Announcement{}, err
	}
	a, err := svc.repo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	a.Title = na.Title
	a.Content = na.Content
	return svc.repo.UpdateAnnouncement(ctx, a)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAnnouncement(ctx, id)
}
