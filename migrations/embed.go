// Package migrations embeds the SQL schema migrations for each store driver.
package migrations

import "embed"

// FS holds one directory of migrations per driver: postgres/ and sqlite/.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
