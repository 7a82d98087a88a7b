// Package cache keeps short-lived JSON snapshots of quote lists in an
// in-memory buntdb store. Entries expire after the configured TTL and are
// dropped eagerly whenever the owning user's quotes change.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

const DefaultTTL = 5 * time.Minute

type Cache struct {
	db  *buntdb.DB
	ttl time.Duration
}

// New opens an in-memory cache. A non-positive ttl uses DefaultTTL.
func New(ttl time.Duration) (*Cache, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// UserKey builds a key scoped to a user so InvalidateUser can find it.
func UserKey(userID uint, parts ...string) string {
	key := fmt.Sprintf("user:%d", userID)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Get decodes the value under key into dst and reports whether it was found.
func (c *Cache) Get(key string, dst any) (bool, error) {
	var raw string
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		raw, err = tx.Get(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON under key for the cache TTL.
func (c *Cache) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, string(data), &buntdb.SetOptions{Expires: true, TTL: c.ttl})
		return err
	})
}

// InvalidateUser drops every entry built with UserKey(userID, ...).
func (c *Cache) InvalidateUser(userID uint) error {
	prefix := UserKey(userID)
	return c.deleteMatching(prefix + ":*")
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		return tx.DeleteAll()
	})
}

func (c *Cache) deleteMatching(pattern string) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		var keys []string
		err := tx.AscendKeys(pattern, func(key, _ string) bool {
			keys = append(keys, key)
			return true
		})
		if err != nil {
			return err
		}
		for _, key := range keys {
			if _, err := tx.Delete(key); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return err
			}
		}
		return nil
	})
}

// Len is the number of live entries.
func (c *Cache) Len() int {
	n := 0
	_ = c.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n
}

func (c *Cache) Close() error {
	return c.db.Close()
}
