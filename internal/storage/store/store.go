package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Store keeps slots in the "slots" table created by database.New.
type Store struct {
	db       *sql.DB
	numbered bool
}

// New returns a Store for db. driver is the database/sql driver name the
// connection was opened with; postgres needs numbered placeholders.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, numbered: driver == "pgx"}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query := s.rebind(`SELECT data FROM slots WHERE slot = ?`)

	var data string

	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("reading slot %s: %w", key, err)
	}

	return data, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query := s.rebind(`
		INSERT INTO slots (slot, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`)

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}

	return nil
}

// rebind rewrites "?" placeholders as "$1", "$2", ... for postgres.
func (s *Store) rebind(query string) string {
	if !s.numbered {
		return query
	}

	var sb strings.Builder

	n := 0

	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}

		n++
		sb.WriteString("$" + strconv.Itoa(n))
	}

	return sb.String()
}
