package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gdugdh24/glicosaude/internal/gate"
	"github.com/spf13/cobra"
)

func newOpenCmd(get func() *app) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve an app route the way the app navigates",
		Long: `Resolve an app route against the current profile and print what would be
shown. With --remote the backend renders the page instead.

Example:
  glicosaude open /historico`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			path := args[0]

			if remote {
				body, location, err := a.api.Page(cmd.Context(), path)
				if err != nil {
					return err
				}
				if location != "" {
					a.printf("Redirecionado para %s.\n", location)
					return nil
				}
				var out bytes.Buffer
				if err := json.Indent(&out, body, "", "  "); err != nil {
					return fmt.Errorf("decode page: %w", err)
				}
				a.printf("%s\n", out.String())
				return nil
			}

			d := gate.Resolve(a.session(cmd.Context()).GateState(), path)
			switch d.Kind {
			case gate.KindRender:
				a.printf("%s\n", d.Path)
			case gate.KindRedirect:
				a.printf("%s -> %s\n", gate.Normalize(path), d.Path)
			case gate.KindSpinner:
				a.printf("Carregando...\n")
			case gate.KindNotFound:
				a.printf("404: página não encontrada (%s)\n", d.Path)
			}
			if d.ShowBottomNav {
				a.printf("[ Início | Registrar | Histórico | Premium | Perfil ]\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the backend to render the page")
	return cmd
}
