package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSyncCmd(get func() *app) *cobra.Command {
	var every string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push a profile save the account has not received yet",
		Long: `Push a profile save the account has not received yet.

With --every the push is retried on a cron schedule until interrupted.

Example:
  glicosaude sync --every "@every 5m"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if a.identity == "" {
				a.printf("Sem sessão ativa; o perfil fica apenas neste dispositivo.\n")
				return nil
			}
			if every == "" {
				return a.syncOnce(cmd.Context())
			}

			c := cron.New()
			if _, err := c.AddFunc(every, func() {
				if err := a.syncOnce(cmd.Context()); err != nil {
					a.log.Warn("Scheduled profile sync failed", zap.Error(err))
				}
			}); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", every, err)
			}

			a.log.Info("Profile sync scheduled", zap.String("schedule", every))
			c.Start()
			<-cmd.Context().Done()
			<-c.Stop().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&every, "every", "", `Cron schedule, e.g. "@every 5m"`)
	return cmd
}

// syncOnce pushes the pending save without a hydration pass, which would
// retry it first and leave nothing to report.
func (a *app) syncOnce(ctx context.Context) error {
	pushed, err := a.profileSync().Retry(ctx, a.identity)
	if err != nil {
		return fmt.Errorf("sync profile: %w", err)
	}
	if pushed {
		a.printf("Perfil sincronizado.\n")
	} else {
		a.printf("Nada para sincronizar.\n")
	}
	return nil
}
