package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind discriminates innovations from lessons learned.
type Kind string

const (
	KindLesson     Kind = "lesson"
	KindInnovation Kind = "innovation"
)

// Kinds lists every record kind in display order.
var Kinds = []Kind{KindInnovation, KindLesson}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindLesson || k == KindInnovation
}

// Points is the fixed score awarded when a record of this kind is created.
func (k Kind) Points() int {
	if k == KindInnovation {
		return 25
	}
	return 10
}

// Label is the human name of the kind.
func (k Kind) Label() string {
	if k == KindInnovation {
		return "Inovação"
	}
	return "Lição Aprendida"
}

// Status is the workflow state of a record. The allowed set depends on Kind.
type Status string

const (
	StatusDraft     Status = "Rascunho"
	StatusSubmitted Status = "Enviado"

	StatusUnderReview  Status = "Em análise"
	StatusApproved     Status = "Aprovado"
	StatusPublished    Status = "Publicado"
	StatusStandardized Status = "Padronizado"

	StatusValidated        Status = "Validado"
	StatusActionInProgress Status = "Ação em andamento"
	StatusCompleted        Status = "Concluída"
	StatusDisseminated     Status = "Disseminada"
)

var statuses = map[Kind][]Status{
	KindInnovation: {StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusPublished, StatusStandardized},
	KindLesson:     {StatusDraft, StatusSubmitted, StatusValidated, StatusActionInProgress, StatusCompleted, StatusDisseminated},
}

// Statuses returns the statuses a record of kind k may hold.
func (k Kind) Statuses() []Status {
	return append([]Status(nil), statuses[k]...)
}

// Allows reports whether s belongs to the status set of k.
func (k Kind) Allows(s Status) bool {
	for _, candidate := range statuses[k] {
		if candidate == s {
			return true
		}
	}
	return false
}

// MediaKind is the type of an attached media item.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaItem is a self-contained attachment. Data holds an inline data URL.
type MediaItem struct {
	ID   string    `json:"id" yaml:"id"`
	Kind MediaKind `json:"type" yaml:"type"`
	Data string    `json:"url" yaml:"url"`
}

// InnovationDetails holds the fields meaningful only for innovations.
type InnovationDetails struct {
	Sector          string
	Category        string
	Problem         string
	Solution        string
	ImpactEstimate  string
	Reproducibility string
}

// Checklist tracks how far a lesson has been standardized.
type Checklist struct {
	Procedure     bool `json:"procedure" yaml:"procedure"`
	Training      bool `json:"training" yaml:"training"`
	Communication bool `json:"communication" yaml:"communication"`
}

// MaxWhys is the number of answers in a five-whys analysis.
const MaxWhys = 5

// LessonDetails holds the fields meaningful only for lessons learned.
type LessonDetails struct {
	Context             string
	FiveWhys            []string
	RootCause           string
	LessonInOneSentence string
	PreventiveActions   string
	Checklist           Checklist
}

// Record is a knowledge record. Exactly one of Innovation and Lesson is set,
// selected by Kind.
type Record struct {
	ID                 string
	Kind               Kind
	RegistrationNumber int
	Project            string
	Author             string
	Idea               string
	Explanation        string
	Date               time.Time
	Media              []MediaItem
	Points             int
	Status             Status

	Innovation *InnovationDetails
	Lesson     *LessonDetails
}

// Summary is the one-line teaser shown in lists.
func (r Record) Summary() string {
	switch {
	case r.Kind == KindInnovation && r.Innovation != nil:
		return r.Innovation.Problem
	case r.Kind == KindLesson && r.Lesson != nil && r.Lesson.LessonInOneSentence != "":
		return r.Lesson.LessonInOneSentence
	}
	return r.Explanation
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	if r.Media != nil {
		out.Media = append([]MediaItem{}, r.Media...)
	}
	if r.Innovation != nil {
		inn := *r.Innovation
		out.Innovation = &inn
	}
	if r.Lesson != nil {
		l := *r.Lesson
		if r.Lesson.FiveWhys != nil {
			l.FiveWhys = append([]string{}, r.Lesson.FiveWhys...)
		}
		out.Lesson = &l
	}
	return out
}

// Draft is the validated form data a new record is created from.
type Draft struct {
	Kind        Kind
	Project     string
	Author      string
	Idea        string
	Explanation string
	Media       []MediaItem

	Innovation *InnovationDetails
	Lesson     *LessonDetails
}

// RankingEntry is the derived score of one author.
type RankingEntry struct {
	Name   string `json:"name" yaml:"name"`
	Points int    `json:"points" yaml:"points"`
	Count  int    `json:"count" yaml:"count"`
}

// dateLayout matches the ISO form produced by browsers' Date.toISOString.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// recordWire is the flat persisted layout: common header plus the optional
// fields of both kinds side by side.
type recordWire struct {
	ID                 string      `json:"id" yaml:"id"`
	Kind               Kind        `json:"type" yaml:"type"`
	RegistrationNumber int         `json:"registrationNumber" yaml:"registrationNumber"`
	Project            string      `json:"project" yaml:"project"`
	Author             string      `json:"author" yaml:"author"`
	Idea               string      `json:"idea" yaml:"idea"`
	Explanation        string      `json:"explanation" yaml:"explanation"`
	Date               string      `json:"date" yaml:"date"`
	Media              []MediaItem `json:"media" yaml:"media"`
	Points             int         `json:"points" yaml:"points"`
	Status             Status      `json:"status" yaml:"status"`

	Sector          string `json:"sector,omitempty" yaml:"sector,omitempty"`
	Category        string `json:"category,omitempty" yaml:"category,omitempty"`
	Problem         string `json:"problem,omitempty" yaml:"problem,omitempty"`
	Solution        string `json:"solution,omitempty" yaml:"solution,omitempty"`
	ImpactEstimate  string `json:"impactEstimate,omitempty" yaml:"impactEstimate,omitempty"`
	Reproducibility string `json:"reproducibility,omitempty" yaml:"reproducibility,omitempty"`

	Context             string     `json:"context,omitempty" yaml:"context,omitempty"`
	FiveWhys            *[]string  `json:"fiveWhys,omitempty" yaml:"fiveWhys,omitempty"`
	RootCause           string     `json:"rootCause,omitempty" yaml:"rootCause,omitempty"`
	LessonInOneSentence string     `json:"lessonInOneSentence,omitempty" yaml:"lessonInOneSentence,omitempty"`
	PreventiveActions   string     `json:"preventiveActions,omitempty" yaml:"preventiveActions,omitempty"`
	Checklist           *Checklist `json:"standardizationChecklist,omitempty" yaml:"standardizationChecklist,omitempty"`
}

func (r Record) wire() recordWire {
	w := recordWire{
		ID:                 r.ID,
		Kind:               r.Kind,
		RegistrationNumber: r.RegistrationNumber,
		Project:            r.Project,
		Author:             r.Author,
		Idea:               r.Idea,
		Explanation:        r.Explanation,
		Media:              r.Media,
		Points:             r.Points,
		Status:             r.Status,
	}
	// The stored layout always carries a list, never null.
	if w.Media == nil {
		w.Media = []MediaItem{}
	}
	if !r.Date.IsZero() {
		w.Date = r.Date.UTC().Format(dateLayout)
	}
	switch r.Kind {
	case KindInnovation:
		if inn := r.Innovation; inn != nil {
			w.Sector = inn.Sector
			w.Category = inn.Category
			w.Problem = inn.Problem
			w.Solution = inn.Solution
			w.ImpactEstimate = inn.ImpactEstimate
			w.Reproducibility = inn.Reproducibility
		}
	case KindLesson:
		if l := r.Lesson; l != nil {
			whys := l.FiveWhys
			checklist := l.Checklist
			w.Context = l.Context
			w.FiveWhys = &whys
			w.RootCause = l.RootCause
			w.LessonInOneSentence = l.LessonInOneSentence
			w.PreventiveActions = l.PreventiveActions
			w.Checklist = &checklist
		}
	}
	return w
}

func (w recordWire) record() Record {
	r := Record{
		ID:                 w.ID,
		Kind:               w.Kind,
		RegistrationNumber: w.RegistrationNumber,
		Project:            w.Project,
		Author:             w.Author,
		Idea:               w.Idea,
		Explanation:        w.Explanation,
		Media:              w.Media,
		Points:             w.Points,
		Status:             w.Status,
	}
	if r.Media == nil {
		r.Media = []MediaItem{}
	}
	// Unparseable dates are kept as the zero time rather than failing the whole collection.
	if t, err := time.Parse(time.RFC3339Nano, w.Date); err == nil {
		r.Date = t.UTC()
	}
	switch w.Kind {
	case KindInnovation:
		r.Innovation = &InnovationDetails{
			Sector:          w.Sector,
			Category:        w.Category,
			Problem:         w.Problem,
			Solution:        w.Solution,
			ImpactEstimate:  w.ImpactEstimate,
			Reproducibility: w.Reproducibility,
		}
	case KindLesson:
		l := &LessonDetails{
			Context:             w.Context,
			RootCause:           w.RootCause,
			LessonInOneSentence: w.LessonInOneSentence,
			PreventiveActions:   w.PreventiveActions,
		}
		if w.FiveWhys != nil {
			l.FiveWhys = *w.FiveWhys
		}
		if w.Checklist != nil {
			l.Checklist = *w.Checklist
		}
		r.Lesson = l
	}
	return r
}

// MarshalJSON implements json.Marshaler using the flat persisted layout.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same flat layout as JSON.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.wire(), nil
}
