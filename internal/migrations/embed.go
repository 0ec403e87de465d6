// Package migrations holds the PostgreSQL schema, applied in file order.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
