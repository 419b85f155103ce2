package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/glicosaude/internal/client/notify"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/spf13/cobra"
)

func newOnboardingCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Fill in your profile, one step at a time",
		Long: `The onboarding wizard has three steps: Perfil do Usuário, Saúde e
Tratamento and Hábitos. Answers are kept on this device between commands.

Example:
  glicosaude onboarding set --name Maria --age 54
  glicosaude onboarding next`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			a.printWizard(a.wizard())
			return nil
		},
	}

	var pf profileFlags
	set := &cobra.Command{
		Use:   "set",
		Short: "Update answers of the wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			patch, err := pf.patch(cmd.Flags())
			if err != nil {
				return err
			}
			w := a.wizard()
			w.Update(patch)
			if err := a.local.SaveDraft(w.State()); err != nil {
				return fmt.Errorf("save draft: %w", err)
			}
			a.printWizard(w)
			return nil
		},
	}
	pf.register(set.Flags())

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current step and answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			a.printWizard(a.wizard())
			return nil
		},
	}

	next := &cobra.Command{
		Use:   "next",
		Short: "Go to the next step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().fireWizard(onboarding.EventNext)
		},
	}

	back := &cobra.Command{
		Use:   "back",
		Short: "Go back one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().fireWizard(onboarding.EventBack)
		},
	}

	complete := &cobra.Command{
		Use:   "complete",
		Short: "Finish onboarding and save the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			w := a.wizard()
			sess := a.session(cmd.Context())

			profile, err := w.Submit(cmd.Context(), sess)
			var stepErr *onboarding.StepError
			switch {
			case errors.As(err, &stepErr):
				a.notifyStepError(stepErr)
				return err
			case errors.Is(err, domain.ErrOnboardingIncomplete):
				a.printf("Conclua as etapas anteriores antes de finalizar.\n")
				return err
			}

			// The profile reached this device even when the account did not
			// take it; the draft is no longer needed either way.
			if clearErr := a.local.ClearDraft(); clearErr != nil {
				a.printf("Não foi possível limpar o rascunho: %v\n", clearErr)
			}
			if err != nil {
				a.notifier.Notify(notify.Error("Erro ao sincronizar perfil", err.Error()))
				return err
			}
			a.notifier.Notify(notify.SettingsSaved)
			a.printf("Bem-vindo(a), %s!\n", profile.Name)
			return nil
		},
	}

	cmd.AddCommand(show, set, next, back, complete)
	return cmd
}

// wizard restores the saved draft or starts a new one.
func (a *app) wizard() *onboarding.Wizard {
	if st, ok := a.local.Draft(); ok {
		return onboarding.Restore(*st)
	}
	return onboarding.New()
}

func (a *app) fireWizard(ev onboarding.Event) error {
	w := a.wizard()
	if err := w.Fire(ev); err != nil {
		var stepErr *onboarding.StepError
		if errors.As(err, &stepErr) {
			a.notifyStepError(stepErr)
		}
		return err
	}
	if err := a.local.SaveDraft(w.State()); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	a.printWizard(w)
	return nil
}

func (a *app) notifyStepError(err *onboarding.StepError) {
	a.notifier.Notify(notify.Error(err.Err.Title, err.Err.Message+" ("+strings.Join(err.Fields, ", ")+")"))
}

func (a *app) printWizard(w *onboarding.Wizard) {
	step := w.Step()
	a.printf("Etapa %d de %d: %s (%d%%)\n", int(step), int(onboarding.LastStep), step.Title(), w.Progress())

	d := w.Draft()
	switch step {
	case onboarding.StepIdentity:
		a.printf("  nome:    %s\n", orDash(d.Name))
		a.printf("  idade:   %s\n", orDash(d.Age))
		a.printf("  sexo:    %s\n", orDash(d.Sex))
		a.printf("  peso:    %s\n", orDash(d.Weight))
		a.printf("  altura:  %s\n", orDash(d.Height))
	case onboarding.StepTreatment:
		a.printf("  tipo de diabetes:     %s\n", orDash(d.DiabetesType))
		a.printf("  anos de diagnóstico:  %s\n", orDash(d.DiagnosisYears))
		a.printf("  usa insulina:         %s\n", orDash(d.UsesInsulin))
		if d.UsesInsulin != nil && *d.UsesInsulin {
			a.printf("  tipo de insulina:     %s\n", orDash(d.InsulinType))
		}
		a.printf("  usa medicação:        %s\n", orDash(d.UsesMedication))
	case onboarding.StepHabits:
		a.printf("  atividade física:  %s\n", orDash(d.ActivityLevel))
		a.printf("  alimentação:       %s\n", orDash(d.EatingHabits))
		a.printf("  consome álcool:    %s\n", orDash(d.ConsumesAlcohol))
		a.printf("  fuma:              %s\n", orDash(d.Smokes))
	}
}

func orDash[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
