package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goaltracker/internal/db"
)

type dbHandle struct {
	conn   *sqlx.DB
	driver string
}

func withDatabase(fn func(d *dbHandle) error) error {
	cfg := loadConfig()
	if !cfg.UsesDatabase() {
		return fmt.Errorf("storage driver %q has no schema to migrate", cfg.StorageDriver)
	}

	conn, err := db.Init(cfg.StorageDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	return fn(&dbHandle{conn: conn, driver: cfg.StorageDriver})
}
