package storage

import (
	"database/sql"
	"fmt"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const dayLayout = "2006-01-02"

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Close() error
}

type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prices(
			symbol TEXT NOT NULL, day TEXT NOT NULL, adj_close REAL NOT NULL,
			PRIMARY KEY(symbol, day)
		)`,
		`CREATE TABLE IF NOT EXISTS price_windows(
			symbol TEXT NOT NULL, start_day TEXT NOT NULL, end_day TEXT NOT NULL, fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS price_windows_symbol ON price_windows(symbol)`,
		`CREATE TABLE IF NOT EXISTS usage(
			command TEXT NOT NULL, chat_id INTEGER, ts INTEGER NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func NewStore(db DB) *Store { return &Store{db: db} }

// PricePoint is one cached daily close. Day is midnight UTC.
type PricePoint struct {
	Day   time.Time
	Close float64
}

// CoveringWindow reports whether a previous fetch already covered [start, end).
func (s *Store) CoveringWindow(symbol string, start, end time.Time) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM price_windows WHERE symbol=? AND start_day<=? AND end_day>=?`,
		symbol, start.Format(dayLayout), end.Format(dayLayout)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SavePrices stores the fetched points and records [start, end) as covered.
func (s *Store) SavePrices(symbol string, start, end time.Time, points []PricePoint) error {
	for _, p := range points {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO prices(symbol,day,adj_close) VALUES(?,?,?)`,
			symbol, p.Day.Format(dayLayout), p.Close); err != nil {
			return fmt.Errorf("save %s %s: %w", symbol, p.Day.Format(dayLayout), err)
		}
	}
	_, err := s.db.Exec(`INSERT INTO price_windows(symbol,start_day,end_day,fetched_at) VALUES(?,?,?,?)`,
		symbol, start.Format(dayLayout), end.Format(dayLayout), time.Now().Unix())
	return err
}

// LoadPrices returns the cached points in [start, end), oldest first.
func (s *Store) LoadPrices(symbol string, start, end time.Time) ([]PricePoint, error) {
	rows, err := s.db.Query(`SELECT day, adj_close FROM prices WHERE symbol=? AND day>=? AND day<? ORDER BY day ASC`,
		symbol, start.Format(dayLayout), end.Format(dayLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PricePoint
	for rows.Next() {
		var day string
		var c float64
		if err := rows.Scan(&day, &c); err != nil {
			return nil, err
		}
		d, err := time.Parse(dayLayout, day)
		if err != nil {
			return nil, fmt.Errorf("bad cached day %q for %s: %w", day, symbol, err)
		}
		out = append(out, PricePoint{Day: d, Close: c})
	}
	return out, rows.Err()
}
