package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local session and its verdict",
		Long:  "Show whether a session is stored locally, its age, and whether the server still accepts it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			cred, user, err := a.store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("read session store: %w", err)
			}
			if cred == nil || user == nil {
				fmt.Println("No session stored.")
				return nil
			}

			age := time.Since(cred.IssuedAt).Round(time.Minute)
			fmt.Printf("Session for %s (%s), issued %s ago", user.Username, user.Role, age)
			if cred.Expired(time.Now()) {
				fmt.Println(" — expired locally.")
			} else {
				fmt.Println(".")
			}

			verdict := a.sessions.Validate(cmd.Context())
			if verdict.Authenticated {
				fmt.Printf("Server verdict: authenticated as %s (%s).\n", verdict.User.Username, verdict.State)
			} else {
				fmt.Println("Server verdict: not authenticated.")
			}
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the authenticated admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.runGuarded(cmd.Context(), func(user domain.User) error {
				fmt.Printf("%s (%s)\n", user.Username, user.Role)
				return nil
			})
		},
	}
}
