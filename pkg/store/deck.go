package store

import (
	"sort"
	"strconv"

	bolt "go.etcd.io/bbolt"
	"src.lessondeck.sh/pkg/store/storedefs"
)

// Parameters for deck history scores.
const (
	DeckScoreDecay     = 0.986 // roughly 0.5^(1/50)
	DeckScoreIncrement = 10
	DeckScorePrecision = 6
)

func init() {
	initDB["initialize deck history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDeck))
		return err
	}
}

func marshalScore(score float64) []byte {
	return []byte(strconv.FormatFloat(score, 'E', DeckScorePrecision, 64))
}

func unmarshalScore(data []byte) float64 {
	f, _ := strconv.ParseFloat(string(data), 64)
	return f
}

// AddDeck adds a deck to the deck history. The scores of all other decks
// decay, so that recently and frequently used decks come first.
func (s *dbStore) AddDeck(deck string, incFactor float64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDeck))

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			score := unmarshalScore(v) * DeckScoreDecay
			if err := b.Put(k, marshalScore(score)); err != nil {
				return err
			}
		}

		k := []byte(deck)
		score := float64(0)
		if v := b.Get(k); v != nil {
			score = unmarshalScore(v)
		}
		score += DeckScoreIncrement * incFactor
		return b.Put(k, marshalScore(score))
	})
}

// DelDeck deletes a deck from the deck history.
func (s *dbStore) DelDeck(deck string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDeck))
		return b.Delete([]byte(deck))
	})
}

// Decks lists all decks in the deck history whose paths are not in the
// blacklist. The results are ordered by scores in descending order.
func (s *dbStore) Decks(blacklist map[string]struct{}) ([]storedefs.Deck, error) {
	var decks []storedefs.Deck
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDeck))
		return b.ForEach(func(k, v []byte) error {
			if _, ok := blacklist[string(k)]; !ok {
				decks = append(decks, storedefs.Deck{Path: string(k), Score: unmarshalScore(v)})
			}
			return nil
		})
	})
	sort.SliceStable(decks, func(i, j int) bool { return decks[i].Score > decks[j].Score })
	return decks, err
}
