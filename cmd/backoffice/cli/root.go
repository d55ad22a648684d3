package cli

import (
	"github.com/spf13/cobra"
)

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Ariana Travel admin back-office client",
		Long: `Backoffice is the native admin client for the Ariana Travel booking API.

Sign in once with "backoffice login"; the session is stored locally and
re-validated against the server before every protected command. Sessions
expire after 24 hours or when the server revokes them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newHotelsCmd())
	cmd.AddCommand(newToursCmd())
	cmd.AddCommand(newBookingsCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}
