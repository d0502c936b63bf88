package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Clear the stored credential and end the provider session",
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDaemon(cmd.Context())
		if err != nil {
			return err
		}

		d.Nav.OnNavigate = openBrowser
		d.Session.Logout()

		fmt.Println("Signed out.")

		return nil
	},
}
