package database

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Dialect identifies the SQL flavour spoken by the configured store.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var (
	ErrUnsupportedURL = errors.New("unsupported database url")

	placeholder = regexp.MustCompile(`\$(\d+)`)
)

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// Rebind rewrites $N placeholders into the numbered form SQLite understands.
func (d Dialect) Rebind(query string) string {
	if d == SQLite {
		return placeholder.ReplaceAllString(query, "?${1}")
	}
	return query
}

// Contains renders a case-sensitive substring predicate on column.
func (d Dialect) Contains(column, param string) string {
	if d == SQLite {
		return fmt.Sprintf("instr(%s, %s) > 0", column, param)
	}
	return fmt.Sprintf("strpos(%s, %s) > 0", column, param)
}

// ParseURL splits a connection string into its dialect and a driver DSN.
//
// postgres:// and postgresql:// URLs go to pgx untouched. sqlite:// URLs follow
// the SQLAlchemy convention (sqlite:///./app.db is relative, sqlite:////tmp/app.db
// absolute) and get the pragmas needed to enforce foreign keys on every pooled
// connection.
func ParseURL(raw string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Postgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if strings.HasPrefix(path, "/") {
			path = path[1:]
		}
		if path == "" {
			return "", "", fmt.Errorf("%w: %q has no file path", ErrUnsupportedURL, raw)
		}
		return SQLite, sqliteDSN(path), nil
	case strings.HasPrefix(raw, "file:"):
		return SQLite, sqliteDSN(strings.TrimPrefix(raw, "file:")), nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
}

func sqliteDSN(path string) string {
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}
	params, _ := url.ParseQuery(query)
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + params.Encode()
}
