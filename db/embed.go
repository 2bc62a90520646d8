// Package db provides the embedded PostgreSQL table definitions.
package db

import (
	"embed"
	"fmt"
)

//go:embed postgres/*.sql
var postgres embed.FS

// PostgresDDL returns the CREATE TABLE statement of table.
func PostgresDDL(table string) (string, error) {
	b, err := postgres.ReadFile("postgres/" + table + ".sql")
	if err != nil {
		return "", fmt.Errorf("reading %s schema: %w", table, err)
	}
	return string(b), nil
}
