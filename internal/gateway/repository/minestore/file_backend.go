package minestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Mine
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			id := strings.TrimSpace(row.ID)
			if id == "" {
				continue
			}
			s.byID[id] = normalizeMine(row)
		}
	})
}

func (s *Store) saveFile() {
	s.ensureLoadedFile()
	s.mu.RLock()
	rows := make([]Mine, 0, len(s.byID))
	for _, m := range s.byID {
		rows = append(rows, normalizeMine(m))
	}
	s.mu.RUnlock()

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) getFile(mineID string) (Mine, bool) {
	s.ensureLoadedFile()
	id := strings.TrimSpace(mineID)
	if id == "" {
		return Mine{}, false
	}
	s.mu.RLock()
	m, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return Mine{}, false
	}
	return normalizeMine(m), true
}

func (s *Store) putFile(m Mine) {
	s.ensureLoadedFile()
	normalized := normalizeMine(m)
	if normalized.ID == "" {
		return
	}
	if normalized.CreatedAt.IsZero() {
		normalized.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.byID[normalized.ID] = normalized
	s.mu.Unlock()
}

func (s *Store) updateFile(mineID string, update func(*Mine)) (Mine, bool) {
	s.ensureLoadedFile()
	id := strings.TrimSpace(mineID)
	if id == "" {
		return Mine{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return Mine{}, false
	}
	update(&m)
	m.ID = id
	m = normalizeMine(m)
	m.UpdatedAt = time.Now().UTC()
	s.byID[id] = m
	return m, true
}

func (s *Store) listByUserFile(userID string) []Mine {
	s.ensureLoadedFile()
	uid := strings.TrimSpace(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mine, 0, len(s.byID))
	for _, m := range s.byID {
		if uid != "" && strings.TrimSpace(m.UserID) != uid {
			continue
		}
		out = append(out, normalizeMine(m))
	}
	sortMinesByCreation(out)
	return out
}

func (s *Store) deleteFile(mineID string) bool {
	s.ensureLoadedFile()
	id := strings.TrimSpace(mineID)
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

func sortMinesByCreation(mines []Mine) {
	sort.SliceStable(mines, func(i, j int) bool {
		return mines[i].CreatedAt.Before(mines[j].CreatedAt)
	})
}
