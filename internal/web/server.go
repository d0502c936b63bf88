// Package web runs the loopback listener that captures the identity
// provider's redirect during a command-line login. It serves exactly one
// callback and a minimal confirmation page; there is no other UI.
package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Resume completes the login flow from the full callback URL the provider
// redirected to.
type Resume func(ctx context.Context, callbackURL string) error

// Service is the one-shot callback listener.
type Service struct {
	App *fiber.App

	resume Resume
	done   chan error
}

// New builds the listener. resume is invoked once with the callback URL.
func New(resume Resume) *Service {
	s := &Service{
		resume: resume,
		done:   make(chan error, 1),
	}

	app := fiber.New(fiber.Config{
		AppName:               "iorecycling",
		CaseSensitive:         true,
		DisableStartupMessage: true,
		ReadBufferSize:        8192,
	})

	app.Use(accessLog())
	app.Get("/auth/callback", s.handleCallback)

	s.App = app

	return s
}

// Start serves on addr until Shutdown. It blocks, matching fiber's Listen.
func (s *Service) Start(addr string) error {
	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Wait blocks until the callback was handled or ctx expires, and returns
// the outcome of the resumed login.
func (s *Service) Wait(ctx context.Context) error {
	select {
	case err := <-s.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops the listener.
func (s *Service) Shutdown() {
	if err := s.App.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("stopping callback listener")
	}
}

func (s *Service) handleCallback(c *fiber.Ctx) error {
	callbackURL := c.BaseURL() + c.OriginalURL()

	err := s.resume(c.UserContext(), callbackURL)

	// Hand the outcome to the waiting CLI after the response is written.
	defer func() { s.done <- err }()

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	if err != nil {
		log.Warn().Err(err).Msg("login callback failed")

		return c.Status(fiber.StatusBadRequest).SendString(failurePage)
	}

	return c.SendString(successPage)
}

const successPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Signed in</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em;">
<h1>Signed in</h1>
<p>You can close this window and return to the terminal.</p>
</body>
</html>`

const failurePage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign-in failed</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em;">
<h1>Sign-in failed</h1>
<p>The login could not be completed. Check the terminal for details.</p>
</body>
</html>`
