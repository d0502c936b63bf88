package storage

import (
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one persisted scalar value.
type Entry struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value string
}

// DB is a Storage backed by a local SQLite file.
type DB struct {
	db *gorm.DB
}

// Open opens (and migrates) the store at the given path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}

	return &DB{db: db}, nil
}

// Get returns the stored value or ErrNotFound.
func (s *DB) Get(key string) (string, error) {
	var entry Entry

	result := s.db.Where("name = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}

		return "", result.Error
	}

	return entry.Value, nil
}

// Set writes the value, overwriting any prior one.
func (s *DB) Set(key, value string) error {
	var entry Entry

	result := s.db.Where("name = ?", key).First(&entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return s.db.Create(&Entry{Name: key, Value: value}).Error
	}

	if result.Error != nil {
		return result.Error
	}

	entry.Value = value

	return s.db.Save(&entry).Error
}

// Delete removes the value. Absent keys are not an error.
func (s *DB) Delete(key string) error {
	return s.db.Where("name = ?", key).Delete(&Entry{}).Error
}
