package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/luxclock/luxclock/internal/status"
	"github.com/luxclock/luxclock/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketStatus   = "status"
	BucketRestarts = "restarts"

	keyLastStatus = "last"

	restartOk     = "ok"
	restartFailed = "failed"
)

// RestartRecord is one power cycle of the light sensor.
type RestartRecord struct {
	Time    time.Time `json:"time"`
	Success bool      `json:"success"`
}

type Persistence interface {
	Init() error

	SaveStatus(snapshot status.Snapshot) error
	LoadStatus() (status.Snapshot, error)
	DeleteStatus() error

	RecordRestart(at time.Time, success bool) error
	LoadRestarts() ([]RestartRecord, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveStatus stores the snapshot of the last minute tick
func (p persistence) SaveStatus(snapshot status.Snapshot) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketStatus))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(keyLastStatus), data)
	})
}

// LoadStatus loads the snapshot of the last minute tick
func (p persistence) LoadStatus() (status.Snapshot, error) {
	var snapshot status.Snapshot

	db, err := p.openPersistence()
	if err != nil {
		return snapshot, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketStatus))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(keyLastStatus))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &snapshot)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved status: %v", err)
			err := b.Delete([]byte(keyLastStatus))
			if err != nil {
				ui.Error("Unable to delete corrupt status: %v", err)
			}
			return os.ErrNotExist
		}
		return nil
	})

	return snapshot, err
}

func (p persistence) DeleteStatus() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketStatus))
		if b != nil {
			return b.Delete([]byte(keyLastStatus))
		}
		return nil
	})
}

// RecordRestart appends the outcome of a sensor power cycle
func (p persistence) RecordRestart(at time.Time, success bool) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	value := restartFailed
	if success {
		value = restartOk
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRestarts))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(at.UTC().Format(time.RFC3339)), []byte(value))
	})
}

// LoadRestarts returns all recorded sensor power cycles, oldest first
func (p persistence) LoadRestarts() ([]RestartRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []RestartRecord
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRestarts))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			at, err := time.Parse(time.RFC3339, string(k))
			if err != nil {
				ui.Warning("Skipping restart record with invalid key %q", k)
				return nil
			}
			result = append(result, RestartRecord{Time: at, Success: string(v) == restartOk})
			return nil
		})
	})

	return result, err
}
