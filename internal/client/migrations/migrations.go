// Package migrations embeds the goose migrations of the durable credential
// store, one directory per SQL dialect.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/clinicsite/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// For returns the migration set of the given dialect.
func For(d dbx.Dialect) (fs.FS, error) {
	switch d {
	case dbx.DialectSQLite, dbx.DialectPostgres:
		return fs.Sub(Migrations, string(d))
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", d)
	}
}
