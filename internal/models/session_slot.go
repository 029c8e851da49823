package models

import "time"

// SessionSlot holds the serialized logged-in user under a fixed key.
type SessionSlot struct {
	Key       string    `gorm:"column:slot_key;primaryKey;type:varchar(128)" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionSlot) TableName() string {
	return "session_slots"
}
