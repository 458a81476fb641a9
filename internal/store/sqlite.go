package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fairyhunter13/shopping-cart/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// document is one stored document; Body holds the JSON array.
type document struct {
	Name      string    `gorm:"primarykey;size:255"`
	Body      string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (document) TableName() string {
	return "documents"
}

// SQLiteStore keeps documents as rows of a single SQLite table.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	var doc document
	if err := s.db.WithContext(ctx).First(&doc, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(doc.Body), &records); err != nil {
		return nil, fmt.Errorf("%w: %s is not a JSON array: %w", model.ErrMalformedRecord, name, err)
	}
	return records, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	b, err := json.Marshal(nonNil(records))
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	doc := document{Name: name, Body: string(b), UpdatedAt: time.Now().UTC()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
