package minestore

import (
	"database/sql"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store keeps mine records in Postgres when a DSN is configured, or in
// a JSON file otherwise. Reads of full mine records go through an lru
// cache; writes invalidate the cached entry.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Mine

	schemaOnce sync.Once
	schemaErr  error

	mineCache *lru.Cache[string, Mine]
}

func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Mine),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Mine](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:        db,
		mineCache: cache,
	}, nil
}

// NewFromDSN returns a Postgres-backed store when the DSN works and
// silently falls back to the file store otherwise.
func NewFromDSN(dsn, path string) *Store {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) EnsureLoaded() {
	if s == nil {
		return
	}
	if s.db != nil {
		_ = s.ensureSchema()
		return
	}
	s.ensureLoadedFile()
}

func (s *Store) Save() {
	if s == nil || s.db != nil {
		return
	}
	s.saveFile()
}

func (s *Store) Get(mineID string) (Mine, bool) {
	if s == nil {
		return Mine{}, false
	}
	if s.db != nil {
		if s.mineCache != nil {
			if cached, ok := s.mineCache.Get(strings.TrimSpace(mineID)); ok {
				return cached, true
			}
		}
		m, ok := s.getDB(mineID)
		if ok && s.mineCache != nil {
			s.mineCache.Add(m.ID, m)
		}
		return m, ok
	}
	return s.getFile(mineID)
}

func (s *Store) Put(m Mine) {
	if s == nil {
		return
	}
	if s.db != nil {
		s.putDB(m)
		if s.mineCache != nil {
			s.mineCache.Remove(strings.TrimSpace(m.ID))
		}
		return
	}
	s.putFile(m)
}

// Update applies the mutation under the store's write lock (file) or a
// row lock (Postgres), so concurrent analyze runs against the same mine
// serialize instead of clobbering each other.
func (s *Store) Update(mineID string, update func(*Mine)) (Mine, bool) {
	if s == nil {
		return Mine{}, false
	}
	if s.db != nil {
		m, ok := s.updateDB(mineID, update)
		if s.mineCache != nil {
			s.mineCache.Remove(strings.TrimSpace(mineID))
		}
		return m, ok
	}
	return s.updateFile(mineID, update)
}

func (s *Store) ListByUser(userID string) []Mine {
	if s == nil {
		return nil
	}
	if s.db != nil {
		return s.listByUserDB(userID)
	}
	return s.listByUserFile(userID)
}

func (s *Store) Delete(mineID string) bool {
	if s == nil {
		return false
	}
	if s.db != nil {
		ok := s.deleteDB(mineID)
		if s.mineCache != nil {
			s.mineCache.Remove(strings.TrimSpace(mineID))
		}
		return ok
	}
	return s.deleteFile(mineID)
}
