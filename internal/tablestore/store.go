package tablestore

import (
	"database/sql"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/tablestore/internal/errors"
	_ "modernc.org/sqlite"
)

// DefaultDriver is the database/sql driver registered by modernc.org/sqlite
const DefaultDriver = "sqlite"

// Store is bound to a single SQLite database file. It holds no connection
// between calls: every operation opens its own, runs one statement in one
// transaction, and closes it again before returning.
type Store struct {
	dbPath string
	driver string
	out    io.Writer
	logger *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithOutput sets where human-readable diagnostics are written (default os.Stdout)
func WithOutput(w io.Writer) Option {
	return func(s *Store) {
		s.out = w
	}
}

// WithLogger sets the structured logger (default slog.Default())
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithDriver overrides the database/sql driver name
func WithDriver(driver string) Option {
	return func(s *Store) {
		s.driver = driver
	}
}

// New creates a Store for dbPath, creating the database file if it doesn't exist
func New(dbPath string, opts ...Option) (*Store, error) {
	s := &Store{
		dbPath: dbPath,
		driver: DefaultDriver,
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, stdErrors.Join(fmt.Errorf("failed to connect to database: %w", err), closeErr)
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("failed to close database: %w", err)
	}

	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Scrubbed reports whether name is usable as a table name, printing the
// reason to the diagnostics output when it isn't.
func (s *Store) Scrubbed(name string) bool {
	return s.scrub(name) == nil
}

func (s *Store) scrub(name string) error {
	err := ValidateName(name)
	if err == nil {
		return nil
	}

	var nameErr *errors.InvalidNameError
	if stdErrors.As(err, &nameErr) && nameErr.Reason == errors.ReasonEmpty {
		s.printf("ERROR: No name given.\n       Check your input and try again.\n")
	} else {
		s.printf("ERROR: Table names may only contain alphanumeric characters or underscores.\n" +
			"       Check your input and try again.\n")
	}
	s.logger.Debug("Rejected table name", "table", name, "error", err)
	return err
}

func (s *Store) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open(s.driver, s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// withTx opens a connection, runs fn inside a transaction and commits.
// If fn fails the transaction is rolled back. The connection is closed on
// every path.
func (s *Store) withTx(fn func(tx *sql.Tx) error) (err error) {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = stdErrors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
	}()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
