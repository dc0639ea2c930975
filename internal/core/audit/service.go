package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service keeps the activity log in SQL next to the record store
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// AutoMigrate creates the activity_logs table if needed
func (s *Service) AutoMigrate() error {
	return s.db.AutoMigrate(&Entry{})
}

// Record appends an entry. data is stored as JSON; a value that cannot be
// encoded is dropped and the entry is still written.
func (s *Service) Record(ctx context.Context, action, entity, entityID, description string, data interface{}) error {
	entry := Entry{
		ID:          uuid.New(),
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			utils.LogWarn("Activity data not serializable", map[string]interface{}{
				"entity": entity,
				"error":  err.Error(),
			})
		} else {
			entry.Data = datatypes.JSON(raw)
		}
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// List returns entries matching filter, newest first
func (s *Service) List(ctx context.Context, filter Filter) (*Page, error) {
	query := s.db.WithContext(ctx).Model(&Entry{})

	// Apply filters
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", filter.Since.UTC())
	}

	// Count total
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}

	// Apply pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize

	entries := []Entry{}
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	return &Page{
		Entries:    entries,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Stats counts entries per action since the given time (all time when nil)
func (s *Service) Stats(ctx context.Context, since *time.Time) (map[string]int64, error) {
	query := s.db.WithContext(ctx).Model(&Entry{}).Select("action, COUNT(*) as count")
	if since != nil {
		query = query.Where("created_at >= ?", since.UTC())
	}

	var results []struct {
		Action string
		Count  int64
	}
	if err := query.Group("action").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get activity stats: %w", err)
	}

	stats := make(map[string]int64, len(results))
	for _, r := range results {
		stats[r.Action] = r.Count
	}
	return stats, nil
}

// Prune deletes entries older than daysToKeep days and returns how many went
func (s *Service) Prune(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, fmt.Errorf("daysToKeep must be at least 1")
	}

	cutoff := s.now().UTC().AddDate(0, 0, -daysToKeep)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&Entry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", result.Error)
	}
	return result.RowsAffected, nil
}
