package announcement

import "github.com/trezcool/classroom/core"

// DateLayout matches JavaScript's Date.toISOString(), the format of stored dates.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

type Announcement struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // set at creation, never updated
}

func (a Announcement) GetID() string { return a.ID }

func (a Announcement) WithID(id string) Announcement {
	a.ID = id
	return a
}

// NewAnnouncement contains information needed to post an Announcement.
type NewAnnouncement struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content"`
}

func (na *NewAnnouncement) Validate() error {
	na.Title = core.CleanString(na.Title)
	return core.ValidateStruct(na)
}

type UpdateAnnouncement NewAnnouncement
