// Package main provides the entry point for the iorecycling command-line
// client. It signs users in against the Keycloak realm with the OpenID
// Connect authorization code flow, keeps the credential in a local SQLite
// store and gates catalogue operations on the roles the credential
// carries.
package main
