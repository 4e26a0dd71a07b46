package store

import (
	"errors"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
)

var (
	// ErrKeyNotFound is returned when a key doesn't exist in the database.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDBClosed is returned when operating on a closed database.
	ErrDBClosed = errors.New("database is closed")
)

// DB defines the basic operations any backend must support. All engine
// records go through this interface; the engine layers its own per-key
// serialization on top.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Close() error
}

// levelDB is the on-disk backend.
type levelDB struct {
	db *leveldb.DB
}

// NewLevelDB opens (creating if missing) a leveldb database at path.
func NewLevelDB(path string) (DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) Get(key []byte) ([]byte, error) {
	v, err := l.db.Get(key, nil)
	if errors.Is(err, leveldberrors.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	return v, err
}

func (l *levelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *levelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *levelDB) Close() error {
	return l.db.Close()
}

// memDB is an in-memory backend for tests and development.
type memDB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func NewMemDB() DB {
	return &memDB{data: make(map[string][]byte)}
}

func (m *memDB) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrDBClosed
	}
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *memDB) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrDBClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *memDB) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrDBClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *memDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}
