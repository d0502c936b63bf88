package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(canCmd)
}

var canCmd = &cobra.Command{
	Use:     "can <resource> <action>",
	Short:   "Check whether the signed-in user may perform an action",
	Args:    cobra.ExactArgs(2),
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDaemon(cmd.Context())
		if err != nil {
			return err
		}

		resource, action := args[0], args[1]

		if d.Enforcer.Can(d.Session.Roles(), resource, action) {
			fmt.Printf("allowed: %s %s\n", action, resource)

			return nil
		}

		fmt.Printf("denied: %s %s\n", action, resource)

		return nil
	},
}
