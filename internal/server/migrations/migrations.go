// Package migrations embeds the SQL migration files for the server database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
