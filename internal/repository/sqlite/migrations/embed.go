package migrations

import "embed"

// FS holds the schema files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
