// Package session drives the OpenID Connect authorization code flow
// against the Keycloak realm and keeps the stored credential, the flow
// state and the user's location consistent with each other.
package session
