// Package database opens the relational source that record sets are loaded
// from and inspects its schema.
//
// Connect wraps GORM with the MySQL driver, or SQLite when Driver is "sqlite"
// (handy for local fixtures). GetTableColumns and MissingColumns let feature
// packages verify that a table carries the columns their models map before a
// run reads it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "people", []string{"id", "email"})
package database
