// Package basicauth gates the operator-facing routes behind HTTP basic
// authentication with credentials supplied via environment variables.
//
// The password value may be stored either as plaintext or as a bcrypt
// hash (recognized by its $2a$/$2b$/$2y$ prefix); comparisons are
// constant-time in both cases. Routes that must stay reachable without
// credentials (webhook delivery, health probes) are excluded by path
// prefix.
//
// When no credentials are configured the middleware allows everything in
// development and refuses all requests elsewhere, so a production
// deployment cannot silently run unprotected.
package basicauth
