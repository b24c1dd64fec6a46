// Package database provides SQLite connectivity for Plant Shop Core.
//
// This package manages:
//   - Opening the plant store with WAL mode and a busy timeout
//   - Applying versioned schema migrations supplied as an fs.FS
//   - Connection pool sizing and lifecycle
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(ctx, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// Migration Strategy:
//
// Migrations are additive. Each version ships a .up.sql and a .down.sql file;
// MigrateDown exists for development and tests only.
package database
