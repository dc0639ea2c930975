package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Actions recorded in the activity log
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionPaid    = "paid"
	ActionOverdue = "overdue"
)

// Entry is one line of the activity log
type Entry struct {
	ID uuid.UUID `json:"id" gorm:"type:varchar(36);primaryKey"`

	Action   string `json:"action" gorm:"type:varchar(32);not null;index"` // created, updated, deleted, paid, overdue
	Entity   string `json:"entity" gorm:"type:varchar(32);not null;index"` // invoice, client, profile
	EntityID string `json:"entityId" gorm:"type:varchar(64);index"`

	Description string         `json:"description,omitempty" gorm:"type:text"`
	Data        datatypes.JSON `json:"data,omitempty" swaggertype:"object"` // state after the change

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name
func (Entry) TableName() string {
	return "activity_logs"
}

// Filter narrows an activity listing
type Filter struct {
	Action   string
	Entity   string
	EntityID string
	Since    *time.Time
	Page     int
	PageSize int
}

// Page is a paginated activity listing, newest first
type Page struct {
	Entries    []Entry `json:"entries"`
	TotalCount int64   `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
