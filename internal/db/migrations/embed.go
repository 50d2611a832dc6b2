package migrations

import "embed"

// FS contains embedded PostgreSQL migrations for outcome history.
//
//go:embed *.sql
var FS embed.FS
