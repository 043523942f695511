// Package database provides a function for connecting to the database.
package database

import (
	"database/sql"
	"fmt"

	"orderproc/internal/config"
)

func NewConnection(cfg config.Database) (*sql.DB, error) {
	c, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := c.Ping(); err != nil {
		c.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return c, nil
}
