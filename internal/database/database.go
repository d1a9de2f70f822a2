package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// DefaultURL is used when DATABASE_URL is not set.
const DefaultURL = "sqlite:///./cortexai_dev.db"

// Dialect identifies the relational store behind a connection.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect Dialect
	DSN     string
}

// ParseURL maps a DATABASE_URL onto a driver and a driver-specific DSN.
// Accepted forms: sqlite:///relative.db, sqlite:////abs/path.db,
// postgres://..., postgresql://... and postgresql+<driver>://...
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultURL
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Target{}, fmt.Errorf("database url %q has no scheme", raw)
	}
	// SQLAlchemy-style URLs carry the driver after a plus sign.
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")

	switch scheme {
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			return Target{}, fmt.Errorf("database url %q has no file path", raw)
		}
		return Target{Dialect: SQLite, DSN: sqliteDSN(path)}, nil
	case "postgres", "postgresql":
		return Target{Dialect: Postgres, DSN: "postgres://" + rest}, nil
	default:
		return Target{}, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

func sqliteDSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)"
}

func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// New creates a new database connection pool for the given DATABASE_URL.
func New(rawURL string) (*sql.DB, Dialect, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(target.Dialect.driverName(), target.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("open %s database: %w", target.Dialect, err)
	}

	if target.Dialect == SQLite {
		// SQLite allows a single writer; keeping one connection lets the
		// store serialize writes instead of failing with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s database: %w", target.Dialect, err)
	}
	return db, target.Dialect, nil
}
