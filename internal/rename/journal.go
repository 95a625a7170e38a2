package rename

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/infews/parkive/internal/document"
)

const (
	renamesBucketName = "renames"
	fieldsBucketName  = "fields"
)

// RenameRecord is a journal entry for one applied rename
type RenameRecord struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	Dir       string          `json:"dir"`
	Original  string          `json:"original"`
	Renamed   string          `json:"renamed"`
	Fields    document.Fields `json:"fields"`
	CreatedAt time.Time       `json:"created_at"`
}

// Journal records applied renames
type Journal interface {
	// SaveRecord saves a rename record
	SaveRecord(record *RenameRecord) error

	// ListRecords returns all records, oldest first
	ListRecords() ([]*RenameRecord, error)

	// Close closes the journal
	Close() error
}

// BoltJournal implements Journal using BoltDB. It also caches extracted
// fields by document digest.
type BoltJournal struct {
	db *bbolt.DB
}

// NewBoltJournal opens (or creates) the journal at path
func NewBoltJournal(path string) (*BoltJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(renamesBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(fieldsBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltJournal{db: db}, nil
}

// SaveRecord saves a rename record to the journal
func (b *BoltJournal) SaveRecord(record *RenameRecord) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(renamesBucketName))
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// ListRecords returns all rename records ordered by time
func (b *BoltJournal) ListRecords() ([]*RenameRecord, error) {
	records := make([]*RenameRecord, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(renamesBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var record RenameRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling record: %w", err)
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// CachedFields looks up fields previously extracted from text with the given digest
func (b *BoltJournal) CachedFields(key string) (document.Fields, bool, error) {
	var (
		fields document.Fields
		found  bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(fieldsBucketName)).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &fields)
	})
	if err != nil {
		return document.Fields{}, false, fmt.Errorf("reading cached fields: %w", err)
	}
	return fields, found, nil
}

// CacheFields stores fields under the digest of the text they came from
func (b *BoltJournal) CacheFields(key string, fields document.Fields) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("marshaling fields: %w", err)
		}
		return tx.Bucket([]byte(fieldsBucketName)).Put([]byte(key), data)
	})
}

// Close closes the database connection
func (b *BoltJournal) Close() error {
	return b.db.Close()
}
