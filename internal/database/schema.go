package database

import (
	"context"
	"fmt"
	"strings"
)

// Table DDL with dialect placeholders:
//
//	{key}   indexed short string (ids, email, status)
//	{str}   free string
//	{text}  long text
//	{ts}    timestamp column type
//	{now}   current timestamp default
//	{float} double precision
//	{bin}   case-sensitive collation where the default is not
//	{opts}  trailing table options
var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (
  id {key} NOT NULL PRIMARY KEY,
  email {key} NOT NULL UNIQUE,
  name {str} NOT NULL,
  role {str} NOT NULL DEFAULT 'user',
  created_at {ts} NOT NULL DEFAULT {now}
){opts}`,
	`CREATE TABLE IF NOT EXISTS bookings (
  id {key} NOT NULL PRIMARY KEY,
  user_id {key} NOT NULL,
  room_id {str} NULL,
  seat_id {str} NULL,
  status {key}{bin} NOT NULL DEFAULT 'pending',
  created_at {ts} NOT NULL DEFAULT {now},
  updated_at {ts} NOT NULL DEFAULT {now},
  FOREIGN KEY (user_id) REFERENCES users (id){bookings_idx}
){opts}`,
	`CREATE TABLE IF NOT EXISTS payments (
  id {key} NOT NULL PRIMARY KEY,
  booking_id {key} NOT NULL,
  amount {float} NOT NULL,
  currency {str} NOT NULL,
  status {str} NOT NULL DEFAULT 'initiated',
  created_at {ts} NOT NULL DEFAULT {now},
  FOREIGN KEY (booking_id) REFERENCES bookings (id)
){opts}`,
	`CREATE TABLE IF NOT EXISTS notifications (
  id {key} NOT NULL PRIMARY KEY,
  user_id {key} NOT NULL,
  type {str} NOT NULL,
  message {text} NOT NULL,
  created_at {ts} NOT NULL DEFAULT {now},
  FOREIGN KEY (user_id) REFERENCES users (id)
){opts}`,
}

// indexes are created separately on dialects that support IF NOT EXISTS.
// MySQL gets the status index inline and indexes foreign keys itself.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_booking_id ON payments (booking_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id)`,
}

func (d Dialect) ddlReplacer() *strings.Replacer {
	switch d {
	case DialectMySQL:
		return strings.NewReplacer(
			"{key}", "VARCHAR(191)",
			"{str}", "VARCHAR(255)",
			"{text}", "TEXT",
			"{ts}", "DATETIME(6)",
			"{now}", "CURRENT_TIMESTAMP(6)",
			"{float}", "DOUBLE",
			"{bin}", " COLLATE utf8mb4_bin",
			"{bookings_idx}", ",\n  KEY idx_bookings_status (status)",
			"{opts}", " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		)
	case DialectPostgres:
		return strings.NewReplacer(
			"{key}", "TEXT",
			"{str}", "TEXT",
			"{text}", "TEXT",
			"{ts}", "TIMESTAMPTZ",
			"{now}", "now()",
			"{float}", "DOUBLE PRECISION",
			"{bin}", "",
			"{bookings_idx}", "",
			"{opts}", "",
		)
	default:
		return strings.NewReplacer(
			"{key}", "TEXT",
			"{str}", "TEXT",
			"{text}", "TEXT",
			"{ts}", "DATETIME",
			"{now}", "("+d.Now()+")",
			"{float}", "REAL",
			"{bin}", "",
			"{bookings_idx}", "",
			"{opts}", "",
		)
	}
}

// SchemaStatements returns the create-if-absent DDL for the dialect, in
// dependency order.
func SchemaStatements(d Dialect) []string {
	r := d.ddlReplacer()
	out := make([]string, 0, len(tables)+len(indexes))
	for _, t := range tables {
		out = append(out, r.Replace(t))
	}
	if d != DialectMySQL {
		out = append(out, indexes...)
	}
	return out
}

// EnsureSchema creates every table that does not exist yet.  It never
// alters or drops existing tables.
func EnsureSchema(ctx context.Context, s *Store) error {
	for _, stmt := range SchemaStatements(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
