// Package store persists finished hands in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/runner"
)

// Store is a SQLite database of hand summaries
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. Use ":memory:" for a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_name TEXT NOT NULL,
			name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL,
			hand_number INTEGER NOT NULL,
			button INTEGER NOT NULL,
			board TEXT NOT NULL,
			pot INTEGER NOT NULL,
			winners TEXT NOT NULL,
			history TEXT NOT NULL,
			started_at TIMESTAMP,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			UNIQUE (session_id, hand_number),
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("create hands table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hand_seats (
			hand_id INTEGER NOT NULL,
			seat INTEGER NOT NULL,
			name TEXT NOT NULL,
			start_chips INTEGER NOT NULL,
			end_chips INTEGER NOT NULL,
			hole_cards TEXT NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (hand_id, seat),
			FOREIGN KEY (hand_id) REFERENCES hands(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("create hand_seats table: %w", err)
	}
	return nil
}

// Session is one run of a table. Hand numbers restart for every session.
type Session struct {
	ID        int64
	Table     string
	Name      string
	Seed      int64
	StartedAt time.Time
	Hands     int // filled by Sessions

	store *Store
}

// StartSession records a new run of table and returns it for saving hands
func (s *Store) StartSession(ctx context.Context, table, name string, seed int64, startedAt time.Time) (*Session, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (table_name, name, seed, started_at) VALUES (?, ?, ?, ?)",
		table, name, seed, startedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Table: table, Name: name, Seed: seed, StartedAt: startedAt.UTC(), store: s}, nil
}

func cardText(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Text()
	}
	return strings.Join(parts, " ")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}

// SaveHand records a finished hand and returns its row id
func (ss *Session) SaveHand(ctx context.Context, h *runner.HandSummary) (int64, error) {
	tx, err := ss.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	pot := 0
	for _, seat := range h.Seats {
		pot += seat.Contributed
	}
	var winners []int
	if h.Result != nil {
		winners = h.Result.Winners
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO hands (session_id, hand_number, button, board, pot, winners, history, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ss.ID, h.HandNumber, h.Button, cardText(h.Board), pot, joinInts(winners),
		strings.Join(h.Lines(), "\n"), h.StartedAt.UTC(), h.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("insert hand %d: %w", h.HandNumber, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, seat := range h.Seats {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hand_seats (hand_id, seat, name, start_chips, end_chips, hole_cards, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, seat.ID, seat.Name, seat.StartChips, seat.EndChips, cardText(seat.HoleCards), seat.FinalStatus.String())
		if err != nil {
			return 0, fmt.Errorf("insert seat %d of hand %d: %w", seat.ID, h.HandNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Observe saves the hand; it satisfies runner.Observer
func (ss *Session) Observe(ctx context.Context, h *runner.HandSummary) error {
	_, err := ss.SaveHand(ctx, h)
	return err
}

// Sessions lists the runs of table, oldest first
func (s *Store) Sessions(ctx context.Context, table string) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.seed, s.started_at, COUNT(h.id)
		FROM sessions s
		LEFT JOIN hands h ON h.session_id = s.id
		WHERE s.table_name = ?
		GROUP BY s.id
		ORDER BY s.id
	`, table)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		ss := &Session{Table: table, store: s}
		if err := rows.Scan(&ss.ID, &ss.Name, &ss.Seed, &ss.StartedAt, &ss.Hands); err != nil {
			return nil, err
		}
		sessions = append(sessions, ss)
	}
	return sessions, rows.Err()
}

// Standing is a player's running total at a table
type Standing struct {
	Name  string
	Hands int
	Net   int
	Won   int // hands with a positive result
}

// Standings returns every seat's totals for table across all sessions, best first
func (s *Store) Standings(ctx context.Context, table string) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hs.name,
			COUNT(*),
			SUM(hs.end_chips - hs.start_chips),
			SUM(CASE WHEN hs.end_chips > hs.start_chips THEN 1 ELSE 0 END)
		FROM hand_seats hs
		JOIN hands h ON h.id = hs.hand_id
		JOIN sessions s ON s.id = h.session_id
		WHERE s.table_name = ? AND hs.start_chips > 0
		GROUP BY hs.name
		ORDER BY 3 DESC, hs.name
	`, table)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Name, &st.Hands, &st.Net, &st.Won); err != nil {
			return nil, err
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}

// HandCount returns the number of hands stored for table across all sessions
func (s *Store) HandCount(ctx context.Context, table string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM hands h JOIN sessions s ON s.id = h.session_id WHERE s.table_name = ?
	`, table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count hands: %w", err)
	}
	return n, nil
}

// History returns the stored history lines of one hand of the session
func (ss *Session) History(ctx context.Context, handNumber int) ([]string, error) {
	var history string
	err := ss.store.db.QueryRowContext(ctx,
		"SELECT history FROM hands WHERE session_id = ? AND hand_number = ?", ss.ID, handNumber).Scan(&history)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("hand %d not found in session %d", handNumber, ss.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("load hand %d: %w", handNumber, err)
	}
	if history == "" {
		return nil, nil
	}
	return strings.Split(history, "\n"), nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
