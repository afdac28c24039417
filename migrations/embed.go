// Package migrations embeds the SQL migration files applied by
// database.RunMigrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
