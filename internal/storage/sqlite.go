// Package storage keeps finished blockfall games in a SQLite file.
// The modernc.org/sqlite driver is pure Go, so builds stay CGO-free.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultLimit is the number of entries returned when a caller passes a
// non-positive limit.
const DefaultLimit = 10

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id    TEXT    NOT NULL,
	player     TEXT    NOT NULL DEFAULT '',
	score      INTEGER NOT NULL,
	lines      INTEGER NOT NULL DEFAULT 0,
	pieces     INTEGER NOT NULL DEFAULT 0,
	width      INTEGER NOT NULL DEFAULT 0,
	height     INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
`

const (
	entryColumns = `id, game_id, player, score, lines, pieces, width, height, created_at`
	statsColumns = `game_id, COUNT(*), MAX(score), AVG(score), SUM(lines), MAX(created_at)`

	// Ties go to the earlier game.
	rankOrder = ` ORDER BY score DESC, id ASC`
)

// Store is a handle on the scores database.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string // SSH user or local $USER; may be empty
	Score     int
	Lines     int
	Pieces    int
	Width     int
	Height    int
	CreatedAt time.Time
}

// GameStats aggregates every recorded game of one variant.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// Open opens the database at path, creating the file, its directory and the
// schema on first use. A leading ~ is expanded to the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand ~: %w", err)
	}
	return filepath.Join(home, rest), nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScore inserts e and returns its row ID. CreatedAt is set by the database.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.GameID == "" {
		return 0, errors.New("storage: save score: empty game id")
	}
	res, err := s.db.Exec(
		`INSERT INTO scores (game_id, player, score, lines, pieces, width, height) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.GameID, e.Player, e.Score, e.Lines, e.Pieces, e.Width, e.Height,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return res.LastInsertId()
}

// TopScores returns the best limit games of gameID, highest score first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM scores WHERE game_id = ?`+rankOrder+` LIMIT ?`,
		gameID, limit,
	)
}

// AllScores returns every game of gameID in ranking order.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM scores WHERE game_id = ?`+rankOrder,
		gameID,
	)
}

func (s *Store) queryEntries(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Lines, &e.Pieces, &e.Width, &e.Height, &created)
		if err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read scores: %w", err)
	}
	return out, nil
}

// HighScore returns the best score of gameID, or 0 when none is recorded.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every game of gameID.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: clear scores: %w", err)
	}
	return nil
}

// GetGameStats aggregates the games of gameID. A variant that was never
// played yields zero stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	row := s.db.QueryRow(`SELECT `+statsColumns+` FROM scores WHERE game_id = ? GROUP BY game_id`, gameID)
	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &GameStats{GameID: gameID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: game stats: %w", err)
	}
	return st, nil
}

// GetAllGamesStats aggregates every variant that has at least one game.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: all stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: all stats: %w", err)
		}
		out[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: all stats: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(sc scanner) (*GameStats, error) {
	var (
		st      GameStats
		created any
	)
	if err := sc.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalLines, &created); err != nil {
		return nil, err
	}
	st.LastPlayed = parseTime(created)
	return &st, nil
}

// parseTime accepts the time.Time or text forms the driver may return for
// DATETIME columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
