package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	sqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// Supported database/sql driver names.
const (
	// DriverCGO is the mattn/go-sqlite3 driver.
	DriverCGO = "sqlite3"
	// DriverPureGo is the modernc.org/sqlite driver, usable without cgo.
	DriverPureGo = "sqlite"
)

const memoryPath = ":memory:"

// ErrUnsupportedDriver is returned for driver names other than DriverCGO and DriverPureGo.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	driver string
}

// NewSQLiteStorage creates a new SQLite storage instance using the cgo driver.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	return NewSQLiteStorageWithDriver(DriverCGO, dbPath)
}

// NewSQLiteStorageWithDriver creates a new SQLite storage instance with the named driver.
func NewSQLiteStorageWithDriver(driver, dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if driver == "" {
		driver = DriverCGO
	}

	dsn, err := buildDSN(driver, dbPath)
	if err != nil {
		return nil, err
	}

	if dbPath != memoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		driver: driver,
	}, nil
}

func buildDSN(driver, dbPath string) (string, error) {
	switch driver {
	case DriverCGO:
		return dbPath + "?_journal_mode=WAL&_busy_timeout=5000", nil
	case DriverPureGo:
		return "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Driver returns the database/sql driver name in use.
func (s *SQLiteStorage) Driver() string {
	return s.driver
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure from either driver.
func isUniqueViolation(err error) bool {
	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var pureErr *sqlite.Error
	if errors.As(err, &pureErr) {
		code := pureErr.Code()
		if code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlitelib.SQLITE_CONSTRAINT && strings.Contains(pureErr.Error(), "UNIQUE")
	}

	return false
}
