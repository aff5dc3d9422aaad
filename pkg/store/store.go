// Package store implements persistent storage of bookmarks and visit history,
// backed by a bbolt database.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.lessondeck.sh/pkg/logutil"
	"src.lessondeck.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// ErrNoBookmark is returned by Bookmark when no bookmark is set for a deck.
var ErrNoBookmark = storedefs.ErrNoBookmark

// Names of buckets.
const (
	bucketBookmark = "bookmark"
	bucketVisit    = "visit"
	bucketDeck     = "deck"
)

// Timeout for acquiring the lock on the database file.
const openTimeout = time.Second

// Functions run in a transaction when a database is opened, keyed by
// description.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is the permanent storage backend.
type DBStore interface {
	storedefs.Store
}

type dbStore struct {
	db  *bolt.DB
	now func() time.Time
}

// Open opens the database at dbname, creating it if it doesn't exist. It
// gives up if the database stays locked by another process for more than a
// second.
func Open(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0o644, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	st, err := newStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened", dbname)
	return st, nil
}

func newStore(db *bolt.DB) (*dbStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dbStore{db, time.Now}, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
