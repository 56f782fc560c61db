package tablestore

import (
	"database/sql"
	"fmt"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
	NAME VARCHAR(200) NOT NULL,
	DESCRIPTION TEXT,
	UNIQUE(NAME, DESCRIPTION)
)`

// CreateTable creates the table if it doesn't exist yet. Calling it again
// for an existing table changes nothing.
func (s *Store) CreateTable(name string, notify bool) error {
	if err := s.scrub(name); err != nil {
		return err
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(fmt.Sprintf(createTableSQL, name)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Table created", "table", name)
	if notify {
		s.printf("%q created successfully.\n", displayName(name))
	}
	return nil
}

// DropTable drops the table if it exists. Dropping a missing table is not an error.
func (s *Store) DropTable(name string, notify bool) error {
	if err := s.scrub(name); err != nil {
		return err
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Table dropped", "table", name)
	if notify {
		s.printf("%s deleted successfully.\n", displayName(name))
	}
	return nil
}

// IsEmpty reports whether the table has no rows
func (s *Store) IsEmpty(name string) (bool, error) {
	if err := s.scrub(name); err != nil {
		return false, err
	}

	var count int64
	err := s.withTx(func(tx *sql.Tx) error {
		if err := tx.QueryRow(fmt.Sprintf("SELECT count(*) FROM %s", name)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count rows in %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return count == 0, nil
}
