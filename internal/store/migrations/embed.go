package migrations

import "embed"

// FS contains embedded SQLite migrations for build storage.
//
//go:embed *.sql
var FS embed.FS
