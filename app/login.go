package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ik-mouad/iorecycling-sub000/internal/web"
)

const loginTimeout = 5 * time.Minute

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Sign in through the identity provider",
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		d, err := newDaemon(ctx)
		if err != nil {
			return err
		}

		svc := web.New(func(ctx context.Context, callbackURL string) error {
			d.Nav.SetLocation(callbackURL)

			return d.Session.ResumeFromRedirect(ctx)
		})

		go func() {
			if err := svc.Start(cfg.Callback.Addr); err != nil {
				log.Error().Err(err).Msg("callback listener failed")
			}
		}()
		defer svc.Shutdown()

		d.Nav.OnNavigate = openBrowser
		d.Session.Login()

		waitCtx, cancel := context.WithTimeout(ctx, loginTimeout)
		defer cancel()

		if err := svc.Wait(waitCtx); err != nil {
			if flowErr := d.Session.LastError(); flowErr != nil {
				fmt.Println(flowErr.UserMessage())
			}

			return err
		}

		raw, ok := d.Tokens.Load()
		if !ok {
			return errNoSession
		}

		claims, err := d.Claims.ClaimsOf(raw)
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s (%s)\n", claims.PreferredUsername, claims.Subject)
		fmt.Printf("Roles: %v\n", claims.Roles)
		fmt.Printf("Landing: %s\n", d.Nav.Current().Path)

		return nil
	},
}
