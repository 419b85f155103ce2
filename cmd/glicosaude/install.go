package main

import (
	"fmt"
	"runtime"

	"github.com/gdugdh24/glicosaude/internal/pwa"
	"github.com/spf13/cobra"
)

func newInstallCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Show how to install the app on your device",
	}

	var userAgent string
	status := &cobra.Command{
		Use:   "status",
		Short: "Show the detected platform and install steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if userAgent == "" {
				userAgent = hostUserAgent()
			}
			client := pwa.Detect(userAgent)
			guides, err := pwa.Guides()
			if err != nil {
				return err
			}

			a.printf("Plataforma: %s, navegador: %s\n", client.Platform, client.Browser)
			if a.local.InstallDismissed() {
				a.printf("Banner de instalação dispensado.\n")
			}
			guide, ok := guides[pwa.DefaultTab(client.Platform)]
			if !ok {
				return nil
			}
			a.printf("\n%s\n", guide.Label)
			for i, step := range guide.Steps {
				a.printf("  %d. %s\n", i+1, step)
			}
			if guide.Note != "" {
				a.printf("\n%s\n", guide.Note)
			}
			return nil
		},
	}
	status.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent to detect instead of this host")

	var undo bool
	dismiss := &cobra.Command{
		Use:   "dismiss",
		Short: "Stop showing the install banner",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.local.SetInstallDismissed(!undo); err != nil {
				return fmt.Errorf("save install state: %w", err)
			}
			return nil
		},
	}
	dismiss.Flags().BoolVar(&undo, "undo", false, "Show the banner again")

	cmd.AddCommand(status, dismiss)
	return cmd
}

// hostUserAgent fakes a User-Agent for the machine running the CLI.
func hostUserAgent() string {
	switch runtime.GOOS {
	case "darwin":
		return "Mozilla/5.0 (Macintosh)"
	case "windows":
		return "Mozilla/5.0 (Windows NT 10.0)"
	case "android":
		return "Mozilla/5.0 (Linux; Android)"
	case "ios":
		return "Mozilla/5.0 (iPhone)"
	default:
		return "Mozilla/5.0 (X11; Linux x86_64)"
	}
}
