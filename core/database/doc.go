// Package database handles the run journal database connection.
//
// It provides a wrapper around GORM that opens either a local SQLite file
// (the default for CLI usage) or a MySQL connection, based on the
// application's configuration. The journal records one row per export run
// so that business users can audit when a catalog export was produced and
// how many rows it contained.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Journal database unavailable", zap.Error(err))
//	}
package database
