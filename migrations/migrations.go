// Package migrations embeds the SQL schema applied by `cvdss-server migrate`.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
