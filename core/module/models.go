package module

import "github.com/trezcool/classroom/core"

type Status string

const (
	Published   Status = "published"
	Unpublished Status = "unpublished"
)

type Module struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Status Status   `json:"status"`
	Pages  []string `json:"pages"` // ordered page ids; duplicates and dangling ids allowed
	Order  int      `json:"order"` // rank among modules
}

func (m Module) GetID() string { return m.ID }

func (m Module) WithID(id string) Module {
	m.ID = id
	return m
}

func (m Module) IsPublished() bool { return m.Status == Published }

// NewModule contains information needed to create a Module.
type NewModule struct {
	Title  string `json:"title" validate:"notblank"`
	Status Status `json:"status" validate:"omitempty,oneof=published unpublished"`
}

func (nm *NewModule) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	if nm.Status == "" {
		nm.Status = Unpublished
	}
	return core.ValidateStruct(nm)
}

// UpdateModule changes the title and status; pages and order are kept.
type UpdateModule NewModule
