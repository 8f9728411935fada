package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store wraps BoltDB to persist order events locally until they are drained
// into the database. The journal survives both process restarts and database
// outages.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "journal"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores a journal entry under a time-ordered key.
func (s *Store) Enqueue(entry Entry) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	entry.normalize()
	entry.bucketKey = []byte(buildKey(entry))

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(entry.bucketKey, payload)
	})
}

// GetBatch returns up to limit entries in journal order without removing them.
func (s *Store) GetBatch(limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(entries) < limit; k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			entry.bucketKey = append([]byte(nil), k...)
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

// Remove deletes the provided entry from the journal.
func (s *Store) Remove(entry Entry) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(entry.bucketKey) == 0 {
		return s.deleteByID(entry.ID)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(entry.bucketKey)
	})
}

// Requeue re-inserts an entry after bumping its timestamp.
func (s *Store) Requeue(entry Entry) error {
	entry.bucketKey = nil
	entry.Timestamp = time.Now().UTC()
	return s.Enqueue(entry)
}

// Size returns the number of journaled entries.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes entries older than the provided timestamp.
func (s *Store) Cleanup(olderThan time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			if entry.Timestamp.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) deleteByID(id string) error {
	if id == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			if entry.ID == id {
				return c.Delete()
			}
		}
		return nil
	})
}

func buildKey(entry Entry) string {
	return fmt.Sprintf("%020d_%s", entry.Timestamp.UnixNano(), entry.ID)
}
