package page

import "github.com/trezcool/classroom/core"

type Page struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	PageType string `json:"pageType"` // a pagetype.PageType name, not enforced
}

func (p Page) GetID() string { return p.ID }

func (p Page) WithID(id string) Page {
	p.ID = id
	return p
}

// NewPage contains information needed to create a Page.
type NewPage struct {
	Title    string `json:"title" validate:"notblank"`
	PageType string `json:"pageType" validate:"notblank"`
}

func (np *NewPage) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.PageType = core.CleanString(np.PageType)
	return core.ValidateStruct(np)
}

type UpdatePage NewPage
