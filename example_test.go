package acervo_test

import (
	"context"
	"fmt"
	"log"
	"os"

	acervo "github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/ranking"
)

// Example_basic opens a vault, registers two records and prints the ranking.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "acervo-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	portal, err := acervo.Open(ctx, tmpDir, acervo.WithWatch(false))
	if err != nil {
		log.Fatal(err)
	}
	defer portal.Close()

	drafts := []core.Draft{
		{Kind: core.KindInnovation, Project: "Obra Alfa", Author: "Ana", Idea: "Forma deslizante"},
		{Kind: core.KindLesson, Project: "Obra Alfa", Author: "Bea", Idea: "Cura do concreto"},
	}
	for _, d := range drafts {
		if _, err := portal.Store.Create(ctx, d); err != nil {
			log.Fatal(err)
		}
	}

	board := ranking.Summarize(portal.Store.Records())
	fmt.Printf("total: %d pts (%.1f%%)\n", board.Total, board.Percent)
	for _, e := range board.Entries {
		fmt.Printf("%s: %d\n", e.Name, e.Points)
	}

	// Output:
	// total: 35 pts (0.7%)
	// Ana: 25
	// Bea: 10
}

// Example_navigation walks the screen state machine through a create and a
// confirmed delete.
func Example_navigation() {
	ctx := context.Background()
	portal, err := acervo.Open(ctx, "", acervo.WithAdapter("memory"), acervo.WithConfirm(navigator.Answer(true)))
	if err != nil {
		log.Fatal(err)
	}
	defer portal.Close()

	nav := portal.Navigator
	if err := nav.StartCreate(core.KindLesson); err != nil {
		log.Fatal(err)
	}
	f, _ := nav.Form()
	f.Project, f.Author, f.Idea = "Obra Beta", "Caio", "Escoramento"
	f.Context, f.LessonInOneSentence, f.PreventiveActions = "Laje", "Escorar antes", "Checklist"

	rec, err := nav.Submit(ctx, f)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(nav.Mode(), rec.RegistrationNumber, rec.Points)

	nav.OpenDetail(rec)
	if _, err := nav.Delete(ctx, rec.ID, nil); err != nil {
		log.Fatal(err)
	}
	fmt.Println(nav.Mode(), portal.Store.Len())

	// Output:
	// lesson_list 1 10
	// home 0
}
