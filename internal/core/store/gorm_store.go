package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordEntry is one persisted collection
type RecordEntry struct {
	Key       string         `gorm:"column:collection_key;primaryKey;type:varchar(64)" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	Revision  int64          `gorm:"not null;default:0" json:"revision"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (RecordEntry) TableName() string {
	return "record_entries"
}

// GormStore keeps collections in a single SQL table
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a SQL-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the connection for tables kept alongside the record store
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates the record_entries table if needed
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&RecordEntry{})
}

func (s *GormStore) Name() string {
	return "sql:" + s.db.Dialector.Name()
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry RecordEntry
	err := s.db.WithContext(ctx).First(&entry, "collection_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	entry := RecordEntry{
		Key:      key,
		Value:    datatypes.JSON(value),
		Revision: 1,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      entry.Value,
			"revision":   gorm.Expr("record_entries.revision + 1"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Revision returns how many times a key has been written (0 if never)
func (s *GormStore) Revision(ctx context.Context, key string) (int64, error) {
	var entry RecordEntry
	err := s.db.WithContext(ctx).Select("revision").First(&entry, "collection_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return entry.Revision, nil
}
