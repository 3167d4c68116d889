package database

import (
	"fmt"
	"strings"
)

// defaultSQLitePath is where the cardápio store lands when no DB_PATH is
// configured. Matches the config package default.
const defaultSQLitePath = "cardapio.sqlite"

// DatabaseConfig holds the connection settings for the cardápio store.
// SQLite serves local development and tests; PostgreSQL is the driver
// for shared deployments.
type DatabaseConfig struct {
	// Driver selects the backend: "postgres" or "sqlite" (the default)
	Driver string

	// PostgreSQL connection fields
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite database file
	Path string
}

// String returns a representation with credentials masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds the data source name for the configured driver. The driver
// name is matched case-insensitively; an empty driver means SQLite, and
// an empty path falls back to the default database file.
func (c *DatabaseConfig) DSN() string {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		if c.Path == "" {
			return defaultSQLitePath
		}
		return c.Path
	default:
		return ""
	}
}
