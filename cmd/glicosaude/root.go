package main

import (
	"github.com/spf13/cobra"
)

// globalFlags are bound to viper keys read by config.LoadClient.
type globalFlags struct {
	apiURL   string
	stateDir string
	token    string
	logLevel string
}

// newRootCmd builds a fresh command tree; tests run it more than once.
func newRootCmd() *cobra.Command {
	var (
		flags globalFlags
		a     *app
	)

	root := &cobra.Command{
		Use:   "glicosaude",
		Short: "GlicoSaúde - acompanhe sua glicemia pelo terminal",
		Long: `GlicoSaúde keeps your health profile on this device and, once you sign in,
mirrors it to your account.

Until onboarding is complete only the onboarding and install screens are
available; every other screen redirects to onboarding.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.apiURL, "api-url", "", "Backend base URL (or GLICOSAUDE_API_URL)")
	pf.StringVar(&flags.stateDir, "state-dir", "", "Directory holding local state (or GLICOSAUDE_STATE_DIR)")
	pf.StringVar(&flags.token, "token", "", "Bearer token to act as (or GLICOSAUDE_TOKEN)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (or GLICOSAUDE_LOG_LEVEL)")

	// Commands reach the app through this getter; it is set before RunE.
	get := func() *app { return a }

	root.AddCommand(newRegisterCmd(get))
	root.AddCommand(newLoginCmd(get))
	root.AddCommand(newLogoutCmd(get))
	root.AddCommand(newOnboardingCmd(get))
	root.AddCommand(newProfileCmd(get))
	root.AddCommand(newReadingsCmd(get))
	root.AddCommand(newOpenCmd(get))
	root.AddCommand(newInstallCmd(get))
	root.AddCommand(newInsightsCmd(get))
	root.AddCommand(newSyncCmd(get))
	return root
}
