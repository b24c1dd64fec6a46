// Package migrations embeds the SQL schema files into the binary so the
// service can create and evolve the plant store without the files on disk.
//
//	db.Migrate(ctx, migrations.FS)
package migrations

import "embed"

// FS holds every *.sql migration at its root.
//
//go:embed *.sql
var FS embed.FS
