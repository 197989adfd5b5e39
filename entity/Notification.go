package entity

import (
	"time"

	"gorm.io/gorm"
)

// Delivery outcomes recorded for each submission.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// Notification records one attempt to email a department about a log entry.
type Notification struct {
	gorm.Model
	LogID          int64     `gorm:"index" json:"logId"`
	FormattedID    string    `gorm:"size:16" json:"formattedId"`
	Department     string    `gorm:"index;size:16" json:"department"`
	RecipientCount int       `json:"recipientCount"`
	Attached       string    `gorm:"type:text" json:"attached"`
	Outcome        string    `gorm:"index;size:16" json:"outcome"`
	Detail         string    `gorm:"type:text" json:"detail"`
	AttemptedAt    time.Time `gorm:"index" json:"attemptedAt"`
}
