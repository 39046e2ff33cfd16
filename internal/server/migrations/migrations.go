// Package migrations embeds the goose SQL migrations for the server schema.
// The statements are kept to the subset understood by both PostgreSQL and
// SQLite.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
