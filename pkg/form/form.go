// Package form holds the editable state behind the record form: prefill from
// an existing record, media attachment and required-field validation before
// anything reaches the record store.
package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/media"
)

// SectorOptions are the suggested sectors for innovations.
var SectorOptions = []string{"Canteiro", "Estrutura", "Instalações", "Acabamento"}

// ImpactOptions are the suggested impact types for innovations.
var ImpactOptions = []string{"Custo", "Prazo", "Qualidade", "Segurança"}

// Field names reported by ValidationError. They match the persisted keys.
const (
	FieldProject             = "project"
	FieldAuthor              = "author"
	FieldIdea                = "idea"
	FieldContext             = "context"
	FieldLessonInOneSentence = "lessonInOneSentence"
	FieldPreventiveActions   = "preventiveActions"
	FieldProblem             = "problem"
	FieldSolution            = "solution"
)

// ValidationError lists the required fields left blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return core.ErrValidation
}

// Form is the state of a create or edit form.
type Form struct {
	Kind core.Kind
	// EditingID is the id of the record being edited; empty when creating.
	EditingID string

	Project     string
	Author      string
	Idea        string
	Explanation string

	Sector          string
	Category        string
	Problem         string
	Solution        string
	ImpactEstimate  string
	Reproducibility string

	Context             string
	FiveWhys            [core.MaxWhys]string
	RootCause           string
	LessonInOneSentence string
	PreventiveActions   string
	Checklist           core.Checklist

	// Status is only applied when editing; creation always submits.
	Status core.Status

	Media []core.MediaItem
	// Uploading is set while a media batch is being read.
	Uploading bool
}

// New returns an empty form for a record of kind k.
func New(k core.Kind) *Form {
	return &Form{Kind: k, Media: []core.MediaItem{}}
}

// FromRecord returns a form prefilled with r for editing. The form keeps
// r's kind.
func FromRecord(r core.Record) *Form {
	f := New(r.Kind)
	f.EditingID = r.ID
	f.Project = r.Project
	f.Author = r.Author
	f.Idea = r.Idea
	f.Explanation = r.Explanation
	f.Status = r.Status
	f.Media = append(f.Media, r.Media...)

	if r.Innovation != nil {
		f.Sector = r.Innovation.Sector
		f.Category = r.Innovation.Category
		f.Problem = r.Innovation.Problem
		f.Solution = r.Innovation.Solution
		f.ImpactEstimate = r.Innovation.ImpactEstimate
		f.Reproducibility = r.Innovation.Reproducibility
	}
	if r.Lesson != nil {
		f.Context = r.Lesson.Context
		copy(f.FiveWhys[:], r.Lesson.FiveWhys)
		f.RootCause = r.Lesson.RootCause
		f.LessonInOneSentence = r.Lesson.LessonInOneSentence
		f.PreventiveActions = r.Lesson.PreventiveActions
		f.Checklist = r.Lesson.Checklist
	}
	return f
}

// Editing reports whether the form edits an existing record.
func (f *Form) Editing() bool {
	return f.EditingID != ""
}

// AddMedia appends a completed batch.
func (f *Form) AddMedia(items ...core.MediaItem) {
	f.Media = append(f.Media, items...)
}

// RemoveMedia drops the item with the given id.
func (f *Form) RemoveMedia(id string) {
	kept := f.Media[:0]
	for _, m := range f.Media {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	f.Media = kept
}

// Attach captures sources with c and appends the whole batch once every
// read has finished. It returns the number of items added.
func (f *Form) Attach(ctx context.Context, c *media.Capturer, sources []media.Source) int {
	f.Uploading = true
	defer func() { f.Uploading = false }()

	items := c.Capture(ctx, sources)
	f.AddMedia(items...)
	return len(items)
}

// Validate checks required fields. Whitespace-only values count as blank.
func (f *Form) Validate() error {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	if !f.Kind.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidKind, f.Kind)
	}

	require(FieldProject, f.Project)
	require(FieldIdea, f.Idea)
	require(FieldAuthor, f.Author)
	switch f.Kind {
	case core.KindLesson:
		require(FieldContext, f.Context)
		require(FieldLessonInOneSentence, f.LessonInOneSentence)
		require(FieldPreventiveActions, f.PreventiveActions)
	case core.KindInnovation:
		require(FieldProblem, f.Problem)
		require(FieldSolution, f.Solution)
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Draft validates the form and converts it into a creation request.
func (f *Form) Draft() (core.Draft, error) {
	if err := f.Validate(); err != nil {
		return core.Draft{}, err
	}
	d := core.Draft{
		Kind:        f.Kind,
		Project:     f.Project,
		Author:      f.Author,
		Idea:        f.Idea,
		Explanation: f.Explanation,
		Media:       append([]core.MediaItem{}, f.Media...),
	}
	switch f.Kind {
	case core.KindInnovation:
		d.Innovation = f.innovation()
	case core.KindLesson:
		d.Lesson = f.lesson()
	}
	return d, nil
}

// Patch validates the form and converts it into a full-form merge for the
// record being edited.
func (f *Form) Patch() (core.Patch, error) {
	if err := f.Validate(); err != nil {
		return core.Patch{}, err
	}
	mediaItems := append([]core.MediaItem{}, f.Media...)
	p := core.Patch{
		Project:     ptr(f.Project),
		Author:      ptr(f.Author),
		Idea:        ptr(f.Idea),
		Explanation: ptr(f.Explanation),
		Media:       &mediaItems,
	}
	if f.Status != "" {
		p.Status = ptr(f.Status)
	}
	switch f.Kind {
	case core.KindInnovation:
		inn := f.innovation()
		p.Innovation = &core.InnovationPatch{
			Sector:          &inn.Sector,
			Category:        &inn.Category,
			Problem:         &inn.Problem,
			Solution:        &inn.Solution,
			ImpactEstimate:  &inn.ImpactEstimate,
			Reproducibility: &inn.Reproducibility,
		}
	case core.KindLesson:
		l := f.lesson()
		p.Lesson = &core.LessonPatch{
			Context:             &l.Context,
			FiveWhys:            &l.FiveWhys,
			RootCause:           &l.RootCause,
			LessonInOneSentence: &l.LessonInOneSentence,
			PreventiveActions:   &l.PreventiveActions,
			Checklist:           &l.Checklist,
		}
	}
	return p, nil
}

func (f *Form) innovation() *core.InnovationDetails {
	return &core.InnovationDetails{
		Sector:          f.Sector,
		Category:        f.Category,
		Problem:         f.Problem,
		Solution:        f.Solution,
		ImpactEstimate:  f.ImpactEstimate,
		Reproducibility: f.Reproducibility,
	}
}

// Five slots are always stored, blank ones included.
func (f *Form) lesson() *core.LessonDetails {
	return &core.LessonDetails{
		Context:             f.Context,
		FiveWhys:            append([]string{}, f.FiveWhys[:]...),
		RootCause:           f.RootCause,
		LessonInOneSentence: f.LessonInOneSentence,
		PreventiveActions:   f.PreventiveActions,
		Checklist:           f.Checklist,
	}
}

func ptr[T any](v T) *T {
	return &v
}
