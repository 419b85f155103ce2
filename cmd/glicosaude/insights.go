package main

import (
	"fmt"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/gate"
	"github.com/spf13/cobra"
)

func newInsightsCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Comment on the last 30 days of readings (Premium)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if a.identity == "" {
				return domain.ErrUnauthenticated
			}
			if !a.allowed(a.session(cmd.Context()).GateState(), gate.RoutePremium) {
				return nil
			}

			in, err := a.api.Insight(cmd.Context())
			if err != nil {
				return fmt.Errorf("insights: %w", err)
			}
			s := in.Summary
			a.printf("%d medições, média %.0f mg/dL, %d%% na faixa normal\n\n", s.Count, s.Average, s.NormalPercent)
			a.printf("%s\n", in.Text)
			for _, tip := range in.Tips {
				a.printf("  - %s\n", tip)
			}
			return nil
		},
	}
}
