package tablestore

import (
	"database/sql"
	stdErrors "errors"
	"fmt"

	"github.com/lepinkainen/tablestore/internal/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Row is one (NAME, DESCRIPTION) pair together with its engine-assigned ROWID.
// A NULL description reads back as "".
type Row struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// InsertRow adds a row and returns its ROWID.
//
// A duplicate (NAME, DESCRIPTION) pair is reported on the diagnostics output
// and returned as a DuplicateRowError; the transaction is still committed and
// no row is added.
func (s *Store) InsertRow(name, value, description string) (int64, error) {
	if err := s.scrub(name); err != nil {
		return 0, err
	}

	var rowID int64
	var dupErr error
	err := s.withTx(func(tx *sql.Tx) error {
		query := fmt.Sprintf("INSERT INTO %s (NAME, DESCRIPTION) VALUES (?, ?)", name)
		result, err := tx.Exec(query, value, description)
		if isUniqueViolation(err) {
			dupErr = errors.NewDuplicateRowError(name, value, err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", name, err)
		}

		rowID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted row id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if dupErr != nil {
		s.printf("ERROR: \"%s\" entry could not be created in %s\n       All name entries must be unique.\n",
			value, displayName(name))
		s.logger.Debug("Duplicate row rejected", "table", name, "value", value)
		return 0, dupErr
	}

	s.logger.Debug("Row inserted", "table", name, "rowid", rowID)
	s.printf("Record created successfully.\n")
	return rowID, nil
}

// DeleteRowByID removes the row with the given ROWID. A missing id is a no-op.
func (s *Store) DeleteRowByID(name string, id int64) error {
	if err := s.scrub(name); err != nil {
		return err
	}

	return s.withTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE ROWID = ?", name), id)
		if err != nil {
			return fmt.Errorf("failed to delete from %s: %w", name, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			s.logger.Debug("Row delete", "table", name, "rowid", id, "rows_deleted", n)
		}
		return nil
	})
}

// AllRows returns every row of the table in whatever order the engine yields.
func (s *Store) AllRows(name string) ([]Row, error) {
	if err := s.scrub(name); err != nil {
		return nil, err
	}

	var result []Row
	err := s.withTx(func(tx *sql.Tx) error {
		rows, err := tx.Query(fmt.Sprintf("SELECT ROWID, NAME, DESCRIPTION FROM %s", name))
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", name, err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			row, err := scanRow(rows)
			if err != nil {
				return err
			}
			result = append(result, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RandomRow picks one row at random. The bool is false when the table is empty.
func (s *Store) RandomRow(name string) (Row, bool, error) {
	if err := s.scrub(name); err != nil {
		return Row{}, false, err
	}

	var row Row
	found := true
	err := s.withTx(func(tx *sql.Tx) error {
		query := fmt.Sprintf("SELECT ROWID, NAME, DESCRIPTION FROM %s ORDER BY RANDOM() LIMIT 1", name)
		var err error
		row, err = scanRow(tx.QueryRow(query))
		if stdErrors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return Row{}, false, err
	}

	return row, found, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (Row, error) {
	var row Row
	var description sql.NullString
	if err := sc.Scan(&row.ID, &row.Name, &description); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return Row{}, err
		}
		return Row{}, fmt.Errorf("failed to scan row: %w", err)
	}
	row.Description = description.String
	return row, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !stdErrors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
}
