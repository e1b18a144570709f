package migrations

import "embed"

// FS holds the goose SQL migrations, applied in version order.
//
//go:embed *.sql
var FS embed.FS
