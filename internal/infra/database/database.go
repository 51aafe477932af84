// Package database opens the relational store shared by the user and message
// repositories and hides the differences between the supported drivers.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mkrupp/messagely/internal/infra/logging"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// ErrUnsupportedDriver is returned when Config.Driver names an unknown driver.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config holds the database connection settings.
type Config struct {
	// Driver selects the database driver: "sqlite" or "pgx"
	Driver string `env:"DRIVER" default:"sqlite"`

	// DSN is the SQLite database file path or the Postgres connection string
	DSN string `env:"DSN" default:"var/storage/messagely.db"`

	// MaxOpenConns caps the Postgres connection pool. SQLite always uses one connection.
	MaxOpenConns int `env:"MAX_OPEN_CONNS" default:"10"`

	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" default:"5m"`

	// BusyTimeout is how long SQLite waits on a locked database file
	BusyTimeout time.Duration `env:"BUSY_TIMEOUT" default:"5s"`
}

// DB is a connection pool bound to a driver dialect.
// Queries are written with `?` placeholders and rebound for the driver.
type DB struct {
	db     *sql.DB
	driver string
	log    logging.Logger
}

// Open connects to the configured database, verifies the connection and
// applies the schema.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	log := logging.GetLogger("infra.database").With(
		logging.Group("db", "driver", cfg.Driver),
	)

	var (
		sqlDB *sql.DB
		err   error
	)

	switch cfg.Driver {
	case DriverSQLite:
		sqlDB, err = openSQLite(cfg)
	case DriverPostgres:
		sqlDB, err = sql.Open(DriverPostgres, cfg.DSN)
		if err == nil {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.MaxOpenConns / 2)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()

		return nil, fmt.Errorf("ping db: %w", err)
	}

	db := &DB{
		db:     sqlDB,
		driver: cfg.Driver,
		log:    log,
	}

	if err := db.migrate(ctx); err != nil {
		sqlDB.Close()

		return nil, fmt.Errorf("migrate db: %w", err)
	}

	log.DebugContext(ctx, "database ready")

	return db, nil
}

func openSQLite(cfg Config) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.DSN); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Pragmas go into the DSN so that every pooled connection gets them.
	sep := "?"
	if strings.Contains(cfg.DSN, "?") {
		sep = "&"
	}

	dsn := fmt.Sprintf("file:%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		cfg.DSN, sep, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// go-sqlite does not support concurrent writes
	db.SetMaxOpenConns(1)

	return db, nil
}

// Driver returns the name of the driver in use.
func (db *DB) Driver() string {
	return db.driver
}

// ExecContext runs a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	//nolint:wrapcheck
	return db.db.ExecContext(ctx, db.Rebind(query), args...)
}

// QueryContext runs a query returning rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	//nolint:wrapcheck
	return db.db.QueryContext(ctx, db.Rebind(query), args...)
}

// QueryRowContext runs a query expected to return at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, db.Rebind(query), args...)
}

// Rebind rewrites `?` placeholders to the driver's bind syntax.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var (
		out      strings.Builder
		n        int
		inString bool
	)

	out.Grow(len(query) + 8)

	for _, ch := range query {
		switch {
		case ch == '\'':
			inString = !inString
		case ch == '?' && !inString:
			n++
			fmt.Fprintf(&out, "$%d", n)

			continue
		}

		out.WriteRune(ch)
	}

	return out.String()
}

// Close closes the underlying pool.
func (db *DB) Close() error {
	if err := db.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a unique or primary key constraint failure.
func IsUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return false
}

// IsForeignKeyViolation reports whether err is a foreign key constraint failure.
func IsForeignKeyViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	return false
}
