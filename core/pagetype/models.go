package pagetype

import "github.com/trezcool/classroom/core"

// Names of the page types every installation must have.
const (
	HomePage        = "HomePage"
	GenericPage     = "GenericPage"
	Assignment      = "Assignment"
	InClassExercise = "In-Class Exercise"
)

var RequiredTypes = []string{HomePage, GenericPage, Assignment, InClassExercise}

type PageType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (pt PageType) GetID() string { return pt.ID }

func (pt PageType) WithID(id string) PageType {
	pt.ID = id
	return pt
}

// IsRequired reports whether name is one of RequiredTypes, ignoring case and surrounding spaces.
func IsRequired(name string) bool {
	for _, req := range RequiredTypes {
		if core.EqualFold(req, name) {
			return true
		}
	}
	return false
}

type NewPageType struct {
	Name string `json:"name" validate:"notblank"`
}

func (npt *NewPageType) Validate() error {
	npt.Name = core.CleanString(npt.Name)
	return core.ValidateStruct(npt)
}
