package settingsstore

import (
	"errors"
	"os"

	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/entities"
)

// SettingsDB is the key/value persistence the store reads and writes.
type SettingsDB interface {
	GetSetting(key string) (*entities.Setting, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

// Priority: database > environment > default
type SettingsStore struct {
	db SettingsDB
}

func New(db SettingsDB) *SettingsStore {
	return &SettingsStore{db: db}
}

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// lookup resolves a value by priority and reports where it came from.
func (s *SettingsStore) lookup(key, envVar, fallback string) (string, string) {
	setting, err := s.db.GetSetting(key)
	if err == nil && setting.Value != "" {
		return setting.Value, SourceDatabase
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal, SourceEnvironment
	}
	return fallback, SourceDefault
}

func (s *SettingsStore) deleteKeys(keys ...string) error {
	for _, key := range keys {
		if err := s.db.DeleteSetting(key); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func parseBool(value string) bool {
	return value == "true" || value == "1"
}
