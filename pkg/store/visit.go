package store

import (
	"encoding/binary"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.lessondeck.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize visit history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketVisit))
		return err
	}
}

var errBadVisit = errors.New("malformed visit record")

// AddVisit adds a visit of unit id to the visit history of a deck, and
// returns its sequence number. Sequence numbers start from 1 for each deck.
func (s *dbStore) AddVisit(deck, id string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(bucketVisit)).CreateBucketIfNotExists([]byte(deck))
		if err != nil {
			return err
		}
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), marshalVisit(s.now(), id))
	})
	return int(seq), err
}

// Visits returns up to n most recent visits of a deck, newest first. If n is
// not positive, all visits are returned.
func (s *dbStore) Visits(deck string, n int) ([]storedefs.Visit, error) {
	var visits []storedefs.Visit
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketVisit)).Bucket([]byte(deck))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && (n <= 0 || len(visits) < n); k, v = c.Prev() {
			t, id, err := unmarshalVisit(v)
			if err != nil {
				return err
			}
			visits = append(visits, storedefs.Visit{Seq: int(unmarshalSeq(k)), ID: id, Time: t})
		}
		return nil
	})
	return visits, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// A visit is stored as the time in Unix nanoseconds, followed by the unit id.
func marshalVisit(t time.Time, id string) []byte {
	b := make([]byte, 8, 8+len(id))
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	return append(b, id...)
}

func unmarshalVisit(v []byte) (time.Time, string, error) {
	if len(v) < 8 {
		return time.Time{}, "", errBadVisit
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(v))), string(v[8:]), nil
}
