package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik-mouad/iorecycling-sub000/internal/daemon"
)

// collections maps the CLI name of each catalogue collection to the
// policy resource guarding it.
var collections = map[string]string{
	"societies":    "society",
	"trucks":       "truck",
	"destinations": "destination",
	"pickups":      "pickup",
	"sales":        "sale",
	"transactions": "transaction",
}

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(callCmd)
}

var callCmd = &cobra.Command{
	Use:       "call <collection>",
	Short:     "List a catalogue collection from the backend",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"societies", "trucks", "destinations", "pickups", "sales", "transactions"},
	PreRunE:   setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDaemon(cmd.Context())
		if err != nil {
			return err
		}

		collection := args[0]

		resource, ok := collections[collection]
		if !ok {
			return fmt.Errorf("unknown collection %q", collection)
		}

		if decision := d.Guard.RequirePermission(resource, "read"); !decision.Allow {
			return fmt.Errorf("access denied, your roles land on %s", decision.RedirectTo)
		}

		out, err := fetch(cmd.Context(), d, collection)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(out)
	},
}

func fetch(ctx context.Context, d *daemon.Daemon, collection string) (any, error) {
	switch collection {
	case "societies":
		return d.API.Societies.List(ctx)
	case "trucks":
		return d.API.Trucks.List(ctx)
	case "destinations":
		return d.API.Destinations.List(ctx)
	case "pickups":
		return d.API.Pickups.List(ctx)
	case "sales":
		return d.API.Sales.List(ctx)
	case "transactions":
		return d.API.Transactions.List(ctx)
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}
