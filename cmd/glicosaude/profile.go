package main

import (
	"github.com/gdugdh24/glicosaude/internal/client/notify"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/gate"
	"github.com/spf13/cobra"
)

func newProfileCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your health profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			sess := a.session(cmd.Context())
			if !a.allowed(sess.GateState(), gate.RoutePerfil) {
				return nil
			}
			a.printProfile(sess.Profile())
			return nil
		},
	}

	var pf profileFlags
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Long: `Change profile fields. Only the flags you pass are touched.

Example:
  glicosaude profile update --weight 72.5 --activity-level ativo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			patch, err := pf.patch(cmd.Flags())
			if err != nil {
				return err
			}
			sess := a.session(cmd.Context())
			if !a.allowed(sess.GateState(), gate.RoutePerfil) {
				return nil
			}
			updated, err := sess.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				a.notifier.Notify(notify.Error("Erro ao salvar perfil", err.Error()))
				return err
			}
			if updated {
				a.notifier.Notify(notify.ProfileUpdated)
			}
			return nil
		},
	}
	pf.register(update.Flags())

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the profile from this device and your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if !yes {
				a.printf("Esta ação não pode ser desfeita. Repita com --yes para confirmar.\n")
				return nil
			}
			sess := a.session(cmd.Context())
			if err := sess.ClearProfile(cmd.Context()); err != nil {
				return err
			}
			a.notifier.Notify(notify.ProfileDeleted)
			a.printf("Próximo passo: glicosaude onboarding\n")
			return nil
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	cmd.AddCommand(show, update, del)
	return cmd
}

// allowed resolves the gate for route and prints where the user is sent
// instead when the route does not render.
func (a *app) allowed(state gate.State, route string) bool {
	d := gate.Resolve(state, route)
	switch d.Kind {
	case gate.KindRender:
		return true
	case gate.KindRedirect:
		a.printf("Redirecionado para %s.\n", d.Path)
	case gate.KindSpinner:
		a.printf("Carregando...\n")
	default:
		a.printf("Página não encontrada: %s\n", route)
	}
	return false
}

func (a *app) printProfile(p *domain.UserProfile) {
	if p == nil {
		a.printf("Nenhum perfil salvo.\n")
		return
	}
	a.printf("%s, %d anos (%s)\n", p.Name, p.Age, p.Sex.Label())
	if p.Weight != nil {
		a.printf("  peso:    %.1f kg\n", *p.Weight)
	}
	if p.Height != nil {
		a.printf("  altura:  %.0f cm\n", *p.Height)
	}
	a.printf("  diabetes:  %s há %d anos\n", p.DiabetesType.Label(), p.DiagnosisYears)
	a.printf("  insulina:  %s\n", yesNo(p.UsesInsulin))
	if p.UsesInsulin && p.InsulinType != nil {
		a.printf("  tipo de insulina:  %s\n", *p.InsulinType)
	}
	a.printf("  medicação: %s\n", yesNo(p.UsesMedication))
	a.printf("  atividade: %s\n", p.ActivityLevel.Label())
	a.printf("  alimentação: %s\n", p.EatingHabits.Label())
	a.printf("  álcool: %s, fuma: %s\n", yesNo(p.ConsumesAlcohol), yesNo(p.Smokes))
}

func yesNo(v bool) string {
	if v {
		return "sim"
	}
	return "não"
}
