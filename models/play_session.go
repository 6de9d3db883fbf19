package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TableTypePool    = "pool"
	TableTypeSnooker = "snooker"

	SessionStatusActive   = "active"
	SessionStatusFinished = "finished"
)

// PlaySession is a timed rental of a recreational table. It is created
// active and transitions exactly once to finished, which records EndTime;
// a finished session is immutable.
type PlaySession struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	TableType string     `gorm:"type:varchar(20);not null" json:"table_type"`
	Status    string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

func (ps *PlaySession) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == "" {
		ps.ID = uuid.NewString()
	}
	return nil
}

func ValidTableType(t string) bool {
	return t == TableTypePool || t == TableTypeSnooker
}
