package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/media"
)

// recordFlags are the form fields settable from the command line.
type recordFlags struct {
	project, author, idea, explanation                           string
	sector, category, problem, solution, impact, reproducibility string
	context, rootCause, lesson, actions                          string
	whys                                                         []string
	procedure, training, communication                           bool
	attach                                                       []string
}

func (rf *recordFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&rf.project, "project", "", "Project or site name")
	f.StringVar(&rf.author, "author", "", "Author")
	f.StringVar(&rf.idea, "idea", "", "Title of the idea")
	f.StringVar(&rf.explanation, "explanation", "", "Free-text explanation")

	f.StringVar(&rf.sector, "sector", "", fmt.Sprintf("Innovation sector (e.g. %v)", form.SectorOptions))
	f.StringVar(&rf.category, "category", "", "Innovation category")
	f.StringVar(&rf.problem, "problem", "", "Innovation: problem identified")
	f.StringVar(&rf.solution, "solution", "", "Innovation: solution and results")
	f.StringVar(&rf.impact, "impact", "", fmt.Sprintf("Innovation impact type (e.g. %v)", form.ImpactOptions))
	f.StringVar(&rf.reproducibility, "reproducibility", "", "Innovation reproducibility")

	f.StringVar(&rf.context, "context", "", "Lesson: context")
	f.StringArrayVar(&rf.whys, "why", nil, "Lesson: five-whys answer, repeatable up to 5 times")
	f.StringVar(&rf.rootCause, "root-cause", "", "Lesson: root cause")
	f.StringVar(&rf.lesson, "lesson", "", "Lesson in one sentence")
	f.StringVar(&rf.actions, "actions", "", "Lesson: preventive actions")
	f.BoolVar(&rf.procedure, "procedure", false, "Lesson checklist: procedure updated")
	f.BoolVar(&rf.training, "training", false, "Lesson checklist: training done")
	f.BoolVar(&rf.communication, "communication", false, "Lesson checklist: communicated")

	f.StringArrayVar(&rf.attach, "attach", nil, "File or glob pattern (e.g. 'fotos/**/*.jpg') to attach, repeatable")
}

// apply copies the flags the user set into f.
func (rf *recordFlags) apply(cmd *cobra.Command, f *form.Form) error {
	changed := cmd.Flags().Changed
	setString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}

	setString("project", &f.Project, rf.project)
	setString("author", &f.Author, rf.author)
	setString("idea", &f.Idea, rf.idea)
	setString("explanation", &f.Explanation, rf.explanation)

	setString("sector", &f.Sector, rf.sector)
	setString("category", &f.Category, rf.category)
	setString("problem", &f.Problem, rf.problem)
	setString("solution", &f.Solution, rf.solution)
	setString("impact", &f.ImpactEstimate, rf.impact)
	setString("reproducibility", &f.Reproducibility, rf.reproducibility)

	setString("context", &f.Context, rf.context)
	setString("root-cause", &f.RootCause, rf.rootCause)
	setString("lesson", &f.LessonInOneSentence, rf.lesson)
	setString("actions", &f.PreventiveActions, rf.actions)
	setBool("procedure", &f.Checklist.Procedure, rf.procedure)
	setBool("training", &f.Checklist.Training, rf.training)
	setBool("communication", &f.Checklist.Communication, rf.communication)

	if changed("why") {
		if len(rf.whys) > core.MaxWhys {
			return fmt.Errorf("%w: at most %d --why answers", core.ErrValidation, core.MaxWhys)
		}
		f.FiveWhys = [core.MaxWhys]string{}
		copy(f.FiveWhys[:], rf.whys)
	}
	return nil
}

// attachMedia expands the --attach patterns and appends the captured batch.
func (rf *recordFlags) attachMedia(cmd *cobra.Command, f *form.Form, capturer *media.Capturer) error {
	if len(rf.attach) == 0 {
		return nil
	}
	sources, err := media.FromPatterns(rf.attach...)
	if err != nil {
		return err
	}
	added := f.Attach(cmd.Context(), capturer, sources)
	if added < len(sources) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d de %d arquivo(s) não puderam ser lidos\n", len(sources)-added, len(sources))
	}
	return nil
}
