// Package token persists and inspects the bearer credential.
//
// The credential is an opaque signed token whose payload segment embeds the
// subject, the expiry instant and the role list. Nothing here verifies the
// signature; the decoded payload is only used for client-side decisions
// (expiry checks, role derivation, landing routes). The backend remains the
// authority on every request.
//
// Every inspection is fail-closed: a token that cannot be decoded is treated
// as expired and yields no claims and no roles.
package token
