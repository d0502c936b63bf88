package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik-mouad/iorecycling-sub000/internal/navigation"
	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the signed-in user and their roles",
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDaemon(cmd.Context())
		if err != nil {
			return err
		}

		raw, ok := d.Tokens.Load()
		if !ok {
			return errNoSession
		}

		claims, err := d.Claims.ClaimsOf(raw)
		if err != nil {
			return errNoSession
		}

		fmt.Printf("Subject:  %s\n", claims.Subject)

		if claims.Name != "" {
			fmt.Printf("Name:     %s\n", claims.Name)
		}

		if claims.Email != "" {
			fmt.Printf("Email:    %s\n", claims.Email)
		}

		fmt.Printf("Roles:    %v\n", claims.Roles)
		fmt.Printf("Expires:  %s\n", time.Unix(claims.Expiry, 0).Format(time.RFC3339))
		fmt.Printf("Landing:  %s\n", navigation.LandingForRoles(claims.Roles))

		if token.IsExpired(raw) {
			fmt.Println("Credential expired, sign in again.")
		}

		if claims.Fallback {
			fmt.Println("(dev fallback claims)")
		}

		return nil
	},
}
