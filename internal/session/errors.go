package session

import (
	"errors"

	"golang.org/x/oauth2"
)

// Kind classifies a failed login flow for user messaging.
type Kind int

// Failure kinds. Provider errors come back from the identity provider
// itself; transport errors mean it could not be reached at all.
const (
	KindProvider Kind = iota + 1
	KindTransport
	KindConfig
)

// Fixed user-facing messages per failure class. Surfaced verbatim; no
// retry is attempted for any of them.
const (
	msgConnectivity  = "the identity provider could not be reached, check your connection"
	msgInvalidClient = "the client configuration was rejected by the identity provider"
	msgInvalidGrant  = "the login could not be completed, please sign in again"
	msgProvider      = "the identity provider refused the login"
)

// FlowError describes a failed login/exchange step.
type FlowError struct {
	Kind        Kind
	Code        string // provider error code, e.g. invalid_grant
	Description string // provider error description, if any
	cause       error
}

func (e *FlowError) Error() string {
	if e.Code != "" {
		if e.Description != "" {
			return "login failed: " + e.Code + ": " + e.Description
		}

		return "login failed: " + e.Code
	}

	if e.cause != nil {
		return "login failed: " + e.cause.Error()
	}

	return "login failed"
}

func (e *FlowError) Unwrap() error { return e.cause }

// UserMessage maps the failure onto the small fixed message set shown to
// the user.
func (e *FlowError) UserMessage() string {
	if e.Kind == KindTransport {
		return msgConnectivity
	}

	switch e.Code {
	case "invalid_client", "unauthorized_client":
		return msgInvalidClient
	case "invalid_grant":
		return msgInvalidGrant
	default:
		return msgProvider
	}
}

// classify sorts an exchange failure into the fixed taxonomy: a provider
// response carrying an OAuth error code is a provider error, anything that
// never produced a response (network unreachable, CORS rejection) is a
// transport error.
func classify(err error) *FlowError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &FlowError{
			Kind:        KindProvider,
			Code:        retrieveErr.ErrorCode,
			Description: retrieveErr.ErrorDescription,
			cause:       err,
		}
	}

	// Anything without a provider response (unreachable host, refused
	// connection) counts as transport.
	return &FlowError{Kind: KindTransport, cause: err}
}
