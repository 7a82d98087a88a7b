package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/hikam/internal/entities"
)

// LogLevel controls gorm's SQL logging. The CLI lowers it to keep output clean.
var LogLevel = logger.Warn

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Quote{},
		&entities.Book{},
		&entities.BookPage{},
		&entities.ReadingProgress{},
		&entities.Setting{},
		&entities.AnalyticsEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats summarises the stored content.
type Stats struct {
	Users  int64 `json:"users"`
	Quotes int64 `json:"quotes"`
	Books  int64 `json:"books"`
}

func (d *Database) GetStats() (Stats, error) {
	var stats Stats
	if err := d.DB.Model(&entities.User{}).Count(&stats.Users).Error; err != nil {
		return stats, err
	}
	if err := d.DB.Model(&entities.Quote{}).Count(&stats.Quotes).Error; err != nil {
		return stats, err
	}
	err := d.DB.Model(&entities.Book{}).Count(&stats.Books).Error
	return stats, err
}
