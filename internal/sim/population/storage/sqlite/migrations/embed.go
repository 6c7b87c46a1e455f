package migrations

import "embed"

// FS contains embedded SQLite migrations for population storage.
//
//go:embed *.sql
var FS embed.FS
