// Package migrations содержит SQL-миграции схемы, применяемые goose
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
