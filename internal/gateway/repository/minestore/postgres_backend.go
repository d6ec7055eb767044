package minestore

import (
	"encoding/json"
	"strings"
	"time"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS mines (
  mine_id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL DEFAULT 'Mine',
  has_analysis BOOLEAN NOT NULL DEFAULT FALSE,
  payload JSONB NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_mines_user_id ON mines (user_id);
`)
	})
	return s.schemaErr
}

func scanMineDB(row rowScanner) (Mine, bool) {
	var (
		m   Mine
		raw []byte
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.HasAnalysis, &raw, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Mine{}, false
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err == nil {
		m.Location = p.Location
		m.Subsidiary = p.Subsidiary
		m.Analysis = p.Analysis
		m.Dashboard = p.Dashboard
		m.Insights = p.Insights
	}
	return normalizeMine(m), true
}

func marshalPayload(m Mine) []byte {
	b, err := json.Marshal(payload{
		Location:   m.Location,
		Subsidiary: m.Subsidiary,
		Analysis:   m.Analysis,
		Dashboard:  m.Dashboard,
		Insights:   m.Insights,
	})
	if err != nil {
		return []byte("{}")
	}
	return b
}

const mineColumns = `mine_id, user_id, name, has_analysis, payload, created_at, updated_at`

func (s *Store) getDB(mineID string) (Mine, bool) {
	if err := s.ensureSchema(); err != nil {
		return Mine{}, false
	}
	id := strings.TrimSpace(mineID)
	if id == "" {
		return Mine{}, false
	}
	row := s.db.QueryRow(`SELECT `+mineColumns+` FROM mines WHERE mine_id = $1`, id)
	return scanMineDB(row)
}

func (s *Store) putDB(m Mine) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	n := normalizeMine(m)
	if n.ID == "" {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, _ = s.db.Exec(`
INSERT INTO mines (mine_id, user_id, name, has_analysis, payload, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW())
ON CONFLICT (mine_id)
DO UPDATE SET user_id=EXCLUDED.user_id,
  name=EXCLUDED.name,
  has_analysis=EXCLUDED.has_analysis,
  payload=EXCLUDED.payload,
  updated_at=NOW()`,
		n.ID, n.UserID, n.Name, n.HasAnalysis, marshalPayload(n), n.CreatedAt)
}

func (s *Store) updateDB(mineID string, update func(*Mine)) (Mine, bool) {
	if err := s.ensureSchema(); err != nil {
		return Mine{}, false
	}
	tx, err := s.db.Begin()
	if err != nil {
		return Mine{}, false
	}
	defer func() { _ = tx.Rollback() }()

	id := strings.TrimSpace(mineID)
	row := tx.QueryRow(`SELECT `+mineColumns+` FROM mines WHERE mine_id = $1 FOR UPDATE`, id)
	cur, ok := scanMineDB(row)
	if !ok {
		return Mine{}, false
	}
	update(&cur)
	cur.ID = id
	cur = normalizeMine(cur)
	cur.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(`
UPDATE mines
SET user_id=$2, name=$3, has_analysis=$4, payload=$5, updated_at=$6
WHERE mine_id=$1`,
		cur.ID, cur.UserID, cur.Name, cur.HasAnalysis, marshalPayload(cur), cur.UpdatedAt)
	if err != nil {
		return Mine{}, false
	}
	if err := tx.Commit(); err != nil {
		return Mine{}, false
	}
	return cur, true
}

func (s *Store) listByUserDB(userID string) []Mine {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil
	}
	rows, err := s.db.Query(`SELECT `+mineColumns+` FROM mines WHERE user_id = $1 ORDER BY created_at`, uid)
	if err != nil {
		return nil
	}
	defer rows.Close()
	out := make([]Mine, 0, 16)
	for rows.Next() {
		if m, ok := scanMineDB(rows); ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) deleteDB(mineID string) bool {
	if err := s.ensureSchema(); err != nil {
		return false
	}
	id := strings.TrimSpace(mineID)
	if id == "" {
		return false
	}
	res, err := s.db.Exec(`DELETE FROM mines WHERE mine_id = $1`, id)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}
