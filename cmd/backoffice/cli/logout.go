package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			nav := a.gate.Logout(cmd.Context())
			fmt.Printf("Signed out. Next stop: %s\n", nav.Route)
			return nil
		},
	}
}
