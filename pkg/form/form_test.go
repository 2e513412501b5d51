package form_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/media"
)

func validLesson() *form.Form {
	f := form.New(core.KindLesson)
	f.Project = "Obra Alfa"
	f.Author = "Ana"
	f.Idea = "Cura do concreto"
	f.Context = "Fissuras na laje"
	f.LessonInOneSentence = "Curar por 7 dias"
	f.PreventiveActions = "Checklist de cura"
	return f
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Run("lesson", func(t *testing.T) {
		f := form.New(core.KindLesson)
		f.Project = "  "
		err := f.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrValidation))

		var vErr *form.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{
			form.FieldProject, form.FieldIdea, form.FieldAuthor,
			form.FieldContext, form.FieldLessonInOneSentence, form.FieldPreventiveActions,
		}, vErr.Missing)
	})

	t.Run("innovation", func(t *testing.T) {
		f := form.New(core.KindInnovation)
		f.Project, f.Author, f.Idea = "Obra", "Bea", "Forma deslizante"
		f.Problem = "Retrabalho"

		var vErr *form.ValidationError
		require.ErrorAs(t, f.Validate(), &vErr)
		assert.Equal(t, []string{form.FieldSolution}, vErr.Missing)

		f.Solution = "Forma reutilizável"
		assert.NoError(t, f.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		assert.ErrorIs(t, form.New("memo").Validate(), core.ErrInvalidKind)
	})
}

func TestDraft_LessonKeepsFiveSlots(t *testing.T) {
	f := validLesson()
	f.FiveWhys[0] = "Por que fissurou?"
	f.Checklist.Training = true

	d, err := f.Draft()
	require.NoError(t, err)
	assert.Equal(t, core.KindLesson, d.Kind)
	require.NotNil(t, d.Lesson)
	assert.Nil(t, d.Innovation)
	assert.Equal(t, []string{"Por que fissurou?", "", "", "", ""}, d.Lesson.FiveWhys)
	assert.Equal(t, core.Checklist{Training: true}, d.Lesson.Checklist)
	assert.NotNil(t, d.Media)
}

func TestFromRecord_RoundTripsThroughPatch(t *testing.T) {
	rec := core.Record{
		ID:                 "rec-1",
		Kind:               core.KindInnovation,
		RegistrationNumber: 3,
		Project:            "Obra Beta",
		Author:             "Bea",
		Idea:               "Forma deslizante",
		Date:               time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Media:              []core.MediaItem{{ID: "m1", Kind: core.MediaImage, Data: "data:image/png;base64,"}},
		Points:             25,
		Status:             core.StatusSubmitted,
		Innovation:         &core.InnovationDetails{Sector: "Estrutura", Problem: "Retrabalho", Solution: "Forma"},
	}

	f := form.FromRecord(rec)
	assert.True(t, f.Editing())
	assert.Equal(t, core.KindInnovation, f.Kind)
	assert.Equal(t, "Estrutura", f.Sector)

	f.Idea = "Forma deslizante v2"
	p, err := f.Patch()
	require.NoError(t, err)

	updated, err := p.Apply(rec)
	require.NoError(t, err)
	assert.Equal(t, "Forma deslizante v2", updated.Idea)
	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, rec.RegistrationNumber, updated.RegistrationNumber)
	assert.Equal(t, 25, updated.Points)
	assert.Equal(t, *rec.Innovation, *updated.Innovation)
	assert.Equal(t, rec.Media, updated.Media)
}

func TestFromRecord_LessonWhys(t *testing.T) {
	rec := core.Record{
		ID:     "rec-2",
		Kind:   core.KindLesson,
		Lesson: &core.LessonDetails{FiveWhys: []string{"a", "b"}},
	}
	f := form.FromRecord(rec)
	assert.Equal(t, [core.MaxWhys]string{"a", "b", "", "", ""}, f.FiveWhys)
}

func TestMedia_AttachAndRemove(t *testing.T) {
	f := validLesson()
	n := 0
	c := media.NewCapturer(media.WithIDGenerator(func() string {
		n++
		return []string{"m1", "m2"}[n-1]
	}), media.WithConcurrency(1))

	added := f.Attach(context.Background(), c, []media.Source{
		media.BytesSource{Filename: "a.png", Type: "image/png", Data: []byte("a")},
		media.BytesSource{Filename: "b.mp4", Type: "video/mp4", Data: []byte("b")},
	})
	assert.Equal(t, 2, added)
	assert.False(t, f.Uploading)
	require.Len(t, f.Media, 2)
	assert.Equal(t, core.MediaVideo, f.Media[1].Kind)

	f.RemoveMedia("m1")
	require.Len(t, f.Media, 1)
	assert.Equal(t, "m2", f.Media[0].ID)

	f.RemoveMedia("unknown")
	assert.Len(t, f.Media, 1)
}

func TestPatch_Status(t *testing.T) {
	f := validLesson()

	p, err := f.Patch()
	require.NoError(t, err)
	assert.Nil(t, p.Status)

	f.Status = core.StatusValidated
	p, err = f.Patch()
	require.NoError(t, err)
	require.NotNil(t, p.Status)
	assert.Equal(t, core.StatusValidated, *p.Status)

	f.Status = core.StatusPublished
	p, err = f.Patch()
	require.NoError(t, err)
	_, err = p.Apply(core.Record{ID: "x", Kind: core.KindLesson, Status: core.StatusSubmitted})
	assert.ErrorIs(t, err, core.ErrInvalidStatus)
}
