// Package migrations embeds the schema migration files so server bootstrap
// and tests can apply them through the goose programmatic API.
package migrations

import "embed"

// FS holds every *.sql migration embedded at compile time. Pass it to
// goose.UpFS / goose.DownToFS so the schema travels with the binary instead
// of depending on a filesystem path at runtime.
//
//go:embed *.sql
var FS embed.FS
