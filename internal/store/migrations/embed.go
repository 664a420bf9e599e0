package migrations

import "embed"

// FS holds the SQL migrations for the tracking store.
//
//go:embed *.sql
var FS embed.FS
