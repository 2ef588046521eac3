package storage

import "time"

// UsageStats aggregates how often one bot command was used.
type UsageStats struct {
	Count    int
	LastUsed time.Time
}

func (s *Store) RecordUsage(command string, chatID int64, ts time.Time) error {
	_, err := s.db.Exec(`INSERT INTO usage(command,chat_id,ts) VALUES(?,?,?)`, command, chatID, ts.Unix())
	return err
}

// UsageSince returns per-command counts for commands issued at or after since.
func (s *Store) UsageSince(since time.Time) (map[string]*UsageStats, error) {
	rows, err := s.db.Query(`SELECT command, COUNT(*), MAX(ts) FROM usage WHERE ts>=? GROUP BY command`, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]*UsageStats{}
	for rows.Next() {
		var cmd string
		var n int
		var last int64
		if err := rows.Scan(&cmd, &n, &last); err != nil {
			return nil, err
		}
		out[cmd] = &UsageStats{Count: n, LastUsed: time.Unix(last, 0)}
	}
	return out, rows.Err()
}
