// Package cli implements the credkit command-line client.
//
// Commands fall in two groups. Local commands (salt, hash, derive) run the
// credential primitives in-process and never contact the daemon. Remote
// commands (token, register, login, passwd, apikey, profile, ping) call the
// daemon over gRPC; account-scoped ones need the access token printed by
// login, passed with -token or the CREDKIT_TOKEN environment variable.
//
// The shell command starts a REPL in which a successful login is remembered
// for the rest of the session.
package cli
