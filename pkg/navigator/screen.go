package navigator

import "github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"

// Mode names the active screen.
type Mode string

const (
	ModeHome           Mode = "home"
	ModeInnovationList Mode = "innovation_list"
	ModeLessonList     Mode = "lesson_list"
	ModeSearch         Mode = "search"
	ModeProfile        Mode = "profile"
	ModeCreate         Mode = "create"
	ModeDetail         Mode = "detail"
	ModeEdit           Mode = "edit"
)

// ListMode returns the list mode for records of kind k.
func ListMode(k core.Kind) Mode {
	if k == core.KindInnovation {
		return ModeInnovationList
	}
	return ModeLessonList
}

// Screen is the navigator state. Each mode carries exactly the data it
// needs, so a detail or edit screen always has a record.
type Screen interface {
	Mode() Mode
	isScreen()
}

// Home is the landing screen.
type Home struct{}

// List shows the records of one kind, filtered by Query.
type List struct {
	Kind  core.Kind
	Query string
}

// Search shows records of every kind matching Query.
type Search struct {
	Query string
}

// Profile shows the ranking.
type Profile struct{}

// Create is the form for a new record of Kind.
type Create struct {
	Kind core.Kind
}

// Detail shows one record.
type Detail struct {
	Record core.Record
}

// Edit is the form for an existing record.
type Edit struct {
	Record core.Record
}

func (Home) Mode() Mode    { return ModeHome }
func (l List) Mode() Mode  { return ListMode(l.Kind) }
func (Search) Mode() Mode  { return ModeSearch }
func (Profile) Mode() Mode { return ModeProfile }
func (Create) Mode() Mode  { return ModeCreate }
func (Detail) Mode() Mode  { return ModeDetail }
func (Edit) Mode() Mode    { return ModeEdit }

func (Home) isScreen()    {}
func (List) isScreen()    {}
func (Search) isScreen()  {}
func (Profile) isScreen() {}
func (Create) isScreen()  {}
func (Detail) isScreen()  {}
func (Edit) isScreen()    {}
