package navigator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/adapters/memory"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/store"
)

func setup(t *testing.T) (*navigator.Navigator, *store.Store) {
	t.Helper()
	s := store.New(memory.NewRepository())
	s.Load(context.Background())
	return navigator.New(s), s
}

func lessonForm() *form.Form {
	f := form.New(core.KindLesson)
	f.Project, f.Author, f.Idea = "Obra Alfa", "Ana", "Cura do concreto"
	f.Context, f.LessonInOneSentence, f.PreventiveActions = "Fissuras", "Curar 7 dias", "Checklist"
	return f
}

func createLesson(t *testing.T, nav *navigator.Navigator) core.Record {
	t.Helper()
	require.NoError(t, nav.StartCreate(core.KindLesson))
	rec, err := nav.Submit(context.Background(), lessonForm())
	require.NoError(t, err)
	return rec
}

func TestNavigator_StartsHome(t *testing.T) {
	nav, _ := setup(t)
	assert.Equal(t, navigator.ModeHome, nav.Mode())
	assert.Equal(t, navigator.Home{}, nav.Current())
}

func TestNavigator_CreateRoutesToKindList(t *testing.T) {
	nav, s := setup(t)

	rec := createLesson(t, nav)
	assert.Equal(t, navigator.ModeLessonList, nav.Mode())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 10, rec.Points)
	assert.Equal(t, []core.Record{rec}, nav.Visible())
}

func TestNavigator_InvalidSubmitStays(t *testing.T) {
	nav, s := setup(t)
	require.NoError(t, nav.StartCreate(core.KindLesson))

	_, err := nav.Submit(context.Background(), form.New(core.KindLesson))
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, navigator.Create{Kind: core.KindLesson}, nav.Current())
	assert.Zero(t, s.Len())
}

func TestNavigator_EditFlow(t *testing.T) {
	nav, s := setup(t)
	rec := createLesson(t, nav)

	assert.ErrorIs(t, nav.StartEdit(), core.ErrInvalidTransition)

	nav.OpenDetail(rec)
	require.NoError(t, nav.StartEdit())
	assert.Equal(t, navigator.ModeEdit, nav.Mode())

	f, err := nav.Form()
	require.NoError(t, err)
	f.Idea = "Cura úmida"

	updated, err := nav.Submit(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, navigator.ModeLessonList, nav.Mode())
	assert.Equal(t, "Cura úmida", updated.Idea)
	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, rec.RegistrationNumber, updated.RegistrationNumber)
	assert.Equal(t, 10, updated.Points)

	got, ok := s.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "Cura úmida", got.Idea)
}

func TestNavigator_EditRoutesByRecordKind(t *testing.T) {
	nav, _ := setup(t)
	rec := createLesson(t, nav)

	// A create for the other kind earlier in the session must not leak into
	// the edit route.
	require.NoError(t, nav.StartCreate(core.KindInnovation))
	nav.Cancel()

	nav.OpenDetail(rec)
	require.NoError(t, nav.StartEdit())
	f, err := nav.Form()
	require.NoError(t, err)
	_, err = nav.Submit(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, navigator.ModeLessonList, nav.Mode())
}

func TestNavigator_CancelAndBack(t *testing.T) {
	nav, _ := setup(t)
	rec := createLesson(t, nav)

	require.NoError(t, nav.StartCreate(core.KindInnovation))
	nav.Cancel()
	assert.Equal(t, navigator.ModeHome, nav.Mode())

	nav.OpenDetail(rec)
	require.NoError(t, nav.Back())
	assert.Equal(t, navigator.List{Kind: core.KindLesson}, nav.Current())

	assert.ErrorIs(t, nav.Back(), core.ErrInvalidTransition)
}

func TestNavigator_DeleteFromDetailGoesHome(t *testing.T) {
	nav, s := setup(t)
	rec := createLesson(t, nav)
	nav.OpenDetail(rec)

	deleted, err := nav.Delete(context.Background(), rec.ID, navigator.Answer(true))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, navigator.ModeHome, nav.Mode())
	assert.Zero(t, s.Len())
}

func TestNavigator_DeleteDeclined(t *testing.T) {
	nav, s := setup(t)
	rec := createLesson(t, nav)
	nav.OpenDetail(rec)

	var asked string
	deleted, err := nav.Delete(context.Background(), rec.ID, navigator.ConfirmFunc(func(_ context.Context, prompt string) bool {
		asked = prompt
		return false
	}))
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, navigator.DeletePrompt, asked)
	assert.Equal(t, navigator.ModeDetail, nav.Mode())
	assert.Equal(t, 1, s.Len())

	// Without a configured confirmer deletions are declined.
	deleted, err = nav.Delete(context.Background(), rec.ID, nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNavigator_DeleteFromListStays(t *testing.T) {
	s := store.New(memory.NewRepository())
	s.Load(context.Background())
	nav := navigator.New(s, navigator.WithConfirm(navigator.Answer(true)))
	rec := createLesson(t, nav)

	deleted, err := nav.Delete(context.Background(), rec.ID, nil)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, navigator.ModeLessonList, nav.Mode())
}

func TestNavigator_TabsAndQuery(t *testing.T) {
	nav, _ := setup(t)
	createLesson(t, nav)

	for _, m := range []navigator.Mode{
		navigator.ModeHome, navigator.ModeInnovationList, navigator.ModeLessonList,
		navigator.ModeSearch, navigator.ModeProfile,
	} {
		require.NoError(t, nav.Tab(m))
		assert.Equal(t, m, nav.Mode())
	}
	assert.ErrorIs(t, nav.Tab(navigator.ModeDetail), core.ErrInvalidTransition)

	require.NoError(t, nav.Tab(navigator.ModeSearch))
	require.NoError(t, nav.SetQuery("alfa"))
	assert.Len(t, nav.Visible(), 1)
	require.NoError(t, nav.SetQuery("zeta"))
	assert.Empty(t, nav.Visible())

	nav.OpenRanking()
	assert.ErrorIs(t, nav.SetQuery("x"), core.ErrInvalidTransition)
	assert.Empty(t, nav.Visible())
}

func TestNavigator_Subscribe(t *testing.T) {
	nav, _ := setup(t)
	var modes []navigator.Mode
	cancel := nav.Subscribe(func(s navigator.Screen) { modes = append(modes, s.Mode()) })

	nav.OpenRanking()
	require.NoError(t, nav.NavigateToList(core.KindInnovation))
	cancel()
	nav.Cancel()

	assert.Equal(t, []navigator.Mode{navigator.ModeProfile, navigator.ModeInnovationList}, modes)
}

func TestNavigator_InvalidKind(t *testing.T) {
	nav, _ := setup(t)
	assert.ErrorIs(t, nav.NavigateToList("memo"), core.ErrInvalidKind)
	assert.ErrorIs(t, nav.StartCreate("memo"), core.ErrInvalidKind)
	_, err := nav.Form()
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}
