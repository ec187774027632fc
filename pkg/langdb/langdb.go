// Package langdb caches parsed language files in a bolt database, so that
// large languages are not decoded again until they change.
package langdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.maxlang.sh/pkg/lang"
	"src.maxlang.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[langdb] ")

const bucketLang = "lang"

// Parts of the database that need initialization.
var initDB = map[string]func(*bolt.Tx) error{
	"initialize language table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLang))
		return err
	},
}

// DB is a cache of parsed languages, keyed by the absolute path of the
// language file.
type DB struct {
	db *bolt.DB
}

// Open opens or creates a cache database.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load returns the Store of a language file. The cached copy is used if the
// size and modification time of the file are unchanged; otherwise the file
// is parsed and the cache updated. Failing to update the cache is not an
// error.
func (d *DB) Load(path string) (*lang.Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &lang.Error{Kind: lang.OpenFailed, Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &lang.Error{Kind: lang.OpenFailed, Path: path, Err: err}
	}
	stamp := stampOf(info)

	var cached map[string]lang.Entry
	d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketLang)).Get([]byte(abs))
		if v != nil {
			cached = decodeRecord(v, stamp)
		}
		return nil
	})
	if cached != nil {
		store := lang.New(cached)
		logger.Printf("cache hit for %s: %d strings", abs, store.Len())
		return store, nil
	}

	store, err := lang.Open(path)
	if err != nil {
		return nil, err
	}
	err = d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLang)).Put([]byte(abs), encodeRecord(stamp, store))
	})
	if err != nil {
		logger.Printf("failed to cache %s: %v", abs, err)
	}
	return store, nil
}

// Forget removes the cached copy of a language file.
func (d *DB) Forget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLang)).Delete([]byte(abs))
	})
}

// Paths returns the paths of all cached language files.
func (d *DB) Paths() ([]string, error) {
	var paths []string
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLang)).ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	return paths, err
}
