package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/glicosaude/internal/client/notify"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/gate"
	"github.com/spf13/cobra"
)

func newReadingsCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "readings",
		Aliases: []string{"historico"},
		Short:   "List, add and delete glucose readings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List readings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if !a.allowed(a.session(cmd.Context()).GateState(), gate.RouteHistorico) {
				return nil
			}
			readings, err := a.readings().List(cmd.Context())
			if err != nil {
				return err
			}
			if len(readings) == 0 {
				a.printf("Nenhuma medição registrada.\n")
				return nil
			}
			for _, r := range readings {
				status := domain.ClassifyGlucose(r.GlucoseValue)
				a.printf("%s  %s  %3d mg/dL  %-13s %s\n",
					r.ID, r.MeasuredAt.Local().Format("02/01 15:04"), r.GlucoseValue, r.MeasurementType.Label(), status.Label())
			}
			return nil
		},
	}

	var value, kind, notes string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a reading",
		Long: `Register a reading. Values must lie between 1 and 599 mg/dL.

Example:
  glicosaude readings add --value 98 --type fasting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if !a.allowed(a.session(cmd.Context()).GateState(), gate.RouteRegistro) {
				return nil
			}
			v, err := domain.ParseGlucoseValue(value)
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				a.notifier.Notify(notify.Error(verr.Title, verr.Message))
				return err
			}
			in := domain.ReadingInput{GlucoseValue: v, MeasurementType: domain.MeasurementType(strings.TrimSpace(kind))}
			if cmd.Flags().Changed("notes") {
				in.Notes = &notes
			}
			_, err = a.readings().Insert(cmd.Context(), in)
			return err
		},
	}
	add.Flags().StringVar(&value, "value", "", "Glucose value in mg/dL")
	add.Flags().StringVar(&kind, "type", "", "fasting, postprandial or random")
	add.Flags().StringVar(&notes, "notes", "", "Optional notes")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.readings().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete reading %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}
