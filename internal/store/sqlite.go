package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS candidate_response (
	id TEXT PRIMARY KEY,
	candidate_email TEXT NOT NULL,
	text TEXT NOT NULL,
	received_at TIMESTAMP NOT NULL
);
`

// SQLite stores candidate responses in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create candidate_response table")
	}

	return &SQLite{db: db}, nil
}

// SaveResponse inserts one raw response row.
func (s *SQLite) SaveResponse(ctx context.Context, response *CandidateResponse) error {
	if response == nil {
		return errors.New("response is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO candidate_response (id, candidate_email, text, received_at) VALUES (?, ?, ?, ?)`,
		response.ID, response.CandidateEmail, response.Text, response.ReceivedAt,
	)
	return errors.Wrap(err, "insert candidate response")
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
