package theme

import "context"

type (
	// Repository persists the dark mode flag. An unset flag reads as false.
	Repository interface {
		DarkMode(ctx context.Context) (bool, error)
		SetDarkMode(ctx context.Context, on bool) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) DarkMode(ctx context.Context) (bool, error) {
	return svc.repo.DarkMode(ctx)
}

func (svc *Service) SetDarkMode(ctx context.Context, on bool) error {
	return svc.repo.SetDarkMode(ctx, on)
}

// Toggle flips the flag and returns its new value.
func (svc *Service) Toggle(ctx context.Context) (bool, error) {
	on, err := svc.repo.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	on = !on
	if err = svc.repo.SetDarkMode(ctx, on); err != nil {
		return false, err
	}
	return on, nil
}
