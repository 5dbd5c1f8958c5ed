package models

import "time"

type PushRegistrationModel struct {
	ID         uint    `gorm:"primaryKey"`
	SecretID   string  `gorm:"type:uuid;not null;uniqueIndex"`
	PushToken  *string `gorm:"type:text"`
	NotifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (PushRegistrationModel) TableName() string {
	return "notification_tokens"
}
