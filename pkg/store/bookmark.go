package store

import (
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["initialize bookmark table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBookmark))
		return err
	}
}

// SetBookmark records id as the bookmarked unit of a deck.
func (s *dbStore) SetBookmark(deck, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBookmark))
		return b.Put([]byte(deck), []byte(id))
	})
}

// Bookmark gets the bookmarked unit of a deck.
func (s *dbStore) Bookmark(deck string) (string, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBookmark))
		v := b.Get([]byte(deck))
		if v == nil {
			return ErrNoBookmark
		}
		id = string(v)
		return nil
	})
	return id, err
}

// DelBookmark deletes the bookmark of a deck.
func (s *dbStore) DelBookmark(deck string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBookmark))
		return b.Delete([]byte(deck))
	})
}
