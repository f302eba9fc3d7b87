// Package viewpoints persists named camera states across bridge restarts, so
// a curated shot survives both the control plane and the runtime going away.
package viewpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/scenebridge/internal/errors"
	"github.com/louisbranch/scenebridge/internal/protocol"
	"go.etcd.io/bbolt"
)

const viewpointBucket = "viewpoint"

// ErrNotFound reports a missing viewpoint record.
var ErrNotFound = errors.New(errors.CodeObjectNotFound, "viewpoint not found")

// Record is one saved camera state.
type Record struct {
	Name    string               `json:"name"`
	Camera  protocol.CameraState `json:"camera"`
	SavedAt time.Time            `json:"savedAt"`
}

// Store provides a BoltDB-backed viewpoint store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists a viewpoint record, overwriting any previous state under the
// same name.
func (s *Store) Save(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.Name) == "" {
		return errors.New(errors.CodeInvalidArgument, "viewpoint name is required")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal viewpoint: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(viewpointBucket))
		if bucket == nil {
			return fmt.Errorf("viewpoint bucket is missing")
		}
		return bucket.Put([]byte(record.Name), payload)
	})
}

// Get fetches a viewpoint record by name.
func (s *Store) Get(ctx context.Context, name string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if s == nil || s.db == nil {
		return Record{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(name) == "" {
		return Record{}, errors.New(errors.CodeInvalidArgument, "viewpoint name is required")
	}

	var record Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(viewpointBucket))
		if bucket == nil {
			return fmt.Errorf("viewpoint bucket is missing")
		}
		payload := bucket.Get([]byte(name))
		if payload == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(payload, &record); err != nil {
			return fmt.Errorf("unmarshal viewpoint: %w", err)
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	return record, nil
}

// List returns every saved viewpoint in key order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var records []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(viewpointBucket))
		if bucket == nil {
			return fmt.Errorf("viewpoint bucket is missing")
		}
		return bucket.ForEach(func(_, payload []byte) error {
			var record Record
			if err := json.Unmarshal(payload, &record); err != nil {
				return fmt.Errorf("unmarshal viewpoint: %w", err)
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes a viewpoint record by name. Deleting a missing record
// reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.CodeInvalidArgument, "viewpoint name is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(viewpointBucket))
		if bucket == nil {
			return fmt.Errorf("viewpoint bucket is missing")
		}
		if bucket.Get([]byte(name)) == nil {
			return ErrNotFound
		}
		return bucket.Delete([]byte(name))
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(viewpointBucket))
		if err != nil {
			return fmt.Errorf("create viewpoint bucket: %w", err)
		}
		return nil
	})
}
