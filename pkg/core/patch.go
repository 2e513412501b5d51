package core

import "fmt"

// Patch is a field-level merge applied to an existing record. Nil fields are
// left untouched. The kind-specific group that does not match the record's
// kind is ignored. ID, Kind, RegistrationNumber, Points and Date are never
// changed by a patch.
type Patch struct {
	Project     *string
	Author      *string
	Idea        *string
	Explanation *string
	Media       *[]MediaItem
	Status      *Status

	Innovation *InnovationPatch
	Lesson     *LessonPatch
}

// InnovationPatch updates innovation-only fields.
type InnovationPatch struct {
	Sector          *string
	Category        *string
	Problem         *string
	Solution        *string
	ImpactEstimate  *string
	Reproducibility *string
}

// LessonPatch updates lesson-only fields.
type LessonPatch struct {
	Context             *string
	FiveWhys            *[]string
	RootCause           *string
	LessonInOneSentence *string
	PreventiveActions   *string
	Checklist           *Checklist
}

// Apply returns a copy of r with the patch merged in.
func (p Patch) Apply(r Record) (Record, error) {
	if p.Status != nil && !r.Kind.Allows(*p.Status) {
		return r, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, *p.Status, r.Kind)
	}
	if p.Lesson != nil && p.Lesson.FiveWhys != nil && len(*p.Lesson.FiveWhys) > MaxWhys {
		return r, fmt.Errorf("%w: at most %d whys", ErrValidation, MaxWhys)
	}

	out := r.Clone()
	set(&out.Project, p.Project)
	set(&out.Author, p.Author)
	set(&out.Idea, p.Idea)
	set(&out.Explanation, p.Explanation)
	if p.Media != nil {
		out.Media = append([]MediaItem{}, (*p.Media)...)
	}
	set(&out.Status, p.Status)

	switch r.Kind {
	case KindInnovation:
		if p.Innovation == nil {
			break
		}
		if out.Innovation == nil {
			out.Innovation = &InnovationDetails{}
		}
		inn := out.Innovation
		set(&inn.Sector, p.Innovation.Sector)
		set(&inn.Category, p.Innovation.Category)
		set(&inn.Problem, p.Innovation.Problem)
		set(&inn.Solution, p.Innovation.Solution)
		set(&inn.ImpactEstimate, p.Innovation.ImpactEstimate)
		set(&inn.Reproducibility, p.Innovation.Reproducibility)
	case KindLesson:
		if p.Lesson == nil {
			break
		}
		if out.Lesson == nil {
			out.Lesson = &LessonDetails{}
		}
		l := out.Lesson
		set(&l.Context, p.Lesson.Context)
		if p.Lesson.FiveWhys != nil {
			l.FiveWhys = append([]string{}, (*p.Lesson.FiveWhys)...)
		}
		set(&l.RootCause, p.Lesson.RootCause)
		set(&l.LessonInOneSentence, p.Lesson.LessonInOneSentence)
		set(&l.PreventiveActions, p.Lesson.PreventiveActions)
		set(&l.Checklist, p.Lesson.Checklist)
	}
	return out, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
