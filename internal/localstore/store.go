// Package localstore is the client-side persistence layer: a sqlite-backed
// key-value store for gob-encoded metadata and a blob bucket for raw image
// bytes. It mirrors what the browser original kept in local storage and the
// binary-blob cache.
package localstore

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

type Store struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

func Open(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path)
}

func isLetters(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return s != ""
}

// New creates a [Store] backed by two tables derived from name, which may
// only contain Latin letters (the name is interpolated into DDL).
func New(db *sql.DB, name string) (*Store, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);
CREATE TABLE IF NOT EXISTS ` + name + `blobs (
	key		TEXT PRIMARY KEY,
	data	BLOB
);`)
	if err != nil {
		return nil, err
	}
	return &Store{name: name, db: db}, nil
}

// Get retrieves a gob-encoded value. value must be a pointer or nil; a nil
// value discards the data after confirming the key exists.
func (s *Store) Get(key string, value any) error {
	var v []byte
	err := s.db.QueryRow(
		`SELECT value FROM `+s.name+` WHERE key = ?;`, key,
	).Scan(&v)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(v)).Decode(value)
}

// Set inserts a new key-value pair or updates an existing one.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO `+s.name+` (key, value)
VALUES (?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Delete removes key from the store without checking if it existed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.name+` WHERE key = ?;`, key)
	return err
}

// PutBlob stores raw bytes under key in the blob bucket.
func (s *Store) PutBlob(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
INSERT INTO `+s.name+`blobs (key, data)
VALUES (?, ?)
ON CONFLICT(key)
DO UPDATE SET data=excluded.data;`,
		key, data)
	return err
}

// GetBlob retrieves raw bytes by key, or [ErrNotFound].
func (s *Store) GetBlob(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM `+s.name+`blobs WHERE key = ?;`, key,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return data, err
}

// DeleteBlob removes a blob without checking if it existed.
func (s *Store) DeleteBlob(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.name+`blobs WHERE key = ?;`, key)
	return err
}
