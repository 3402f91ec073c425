// Package migrations embeds the SQL schema migrations so the binary can
// initialize its own store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
