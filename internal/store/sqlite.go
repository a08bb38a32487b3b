package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the journal database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps journal writes from blocking readers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS spins (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			spin_index INTEGER NOT NULL,
			position INTEGER NOT NULL,
			dealer TEXT NOT NULL DEFAULT '',
			recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_spins_session ON spins(session_id, spin_index)`,
		`CREATE INDEX IF NOT EXISTS idx_spins_dealer ON spins(session_id, dealer)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveSpin appends a single observation to the journal.
func (s *SQLiteDB) SaveSpin(spin *Spin) error {
	if spin.ID == "" {
		spin.ID = uuid.New().String()
	}

	query := `INSERT INTO spins (id, session_id, spin_index, position, dealer) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, spin.ID, spin.SessionID, spin.SpinIndex, spin.Position, spin.Dealer)
	return err
}

// SaveSpins appends a batch of observations in one transaction.
func (s *SQLiteDB) SaveSpins(spins []Spin) error {
	if len(spins) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO spins (id, session_id, spin_index, position, dealer) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range spins {
		if spins[i].ID == "" {
			spins[i].ID = uuid.New().String()
		}
		if _, err := stmt.Exec(spins[i].ID, spins[i].SessionID, spins[i].SpinIndex, spins[i].Position, spins[i].Dealer); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSpins retrieves journaled spins for a session with pagination, in
// arrival order.
func (s *SQLiteDB) GetSpins(sessionID string, limit, offset int) ([]Spin, error) {
	query := `SELECT id, session_id, spin_index, position, dealer, recorded_at
		FROM spins WHERE session_id = ?
		ORDER BY spin_index LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spins []Spin
	for rows.Next() {
		var spin Spin
		if err := rows.Scan(&spin.ID, &spin.SessionID, &spin.SpinIndex, &spin.Position, &spin.Dealer, &spin.RecordedAt); err != nil {
			return nil, err
		}
		spins = append(spins, spin)
	}
	return spins, rows.Err()
}

// CountSpins returns the number of journaled spins for a session.
func (s *SQLiteDB) CountSpins(sessionID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM spins WHERE session_id = ?", sessionID).Scan(&count)
	return count, err
}
