// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/audience-choice/cliparse"
)

// sqlitePragmas are applied to every SQLite connection.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn, err := driverFor(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	// SQLite allows a single writer; one connection keeps transactions serialized
	// and makes ":memory:" databases behave as a single database.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func driverFor(dbType, url string) (driver, dsn string, err error) {
	switch dbType {
	case cliparse.DatabasePostgres:
		return "postgres", url, nil
	case cliparse.DatabaseSQLite, "":
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		return "sqlite", url + sep + strings.Join(sqlitePragmas, "&"), nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", dbType)
	}
}
