package database

import (
	"strconv"
	"strings"
)

// Dialect names the SQL flavour behind a Store.  Queries are written with
// '?' placeholders and rebound for dialects that use numbered ones.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// Rebind rewrites '?' placeholders into $1..$n for Postgres.  Queries in
// this module never contain a literal question mark.
func (d Dialect) Rebind(q string) string {
	if d != DialectPostgres || !strings.Contains(q, "?") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// Now is the SQL expression for the current timestamp.  SQLite's
// CURRENT_TIMESTAMP only has second precision, so milliseconds are
// formatted explicitly.
func (d Dialect) Now() string {
	switch d {
	case DialectMySQL:
		return "CURRENT_TIMESTAMP(6)"
	case DialectPostgres:
		return "now()"
	default:
		return "strftime('%Y-%m-%d %H:%M:%f', 'now')"
	}
}
